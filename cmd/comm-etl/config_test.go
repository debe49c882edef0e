// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COMM_ETL_SOURCE", "COMM_ETL_OUTPUT", "NATS_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := loadConfig(flags{})

	require.NoError(t, err)
	assert.Equal(t, "raw_data.csv", cfg.Source)
	assert.Equal(t, "star_schema_output.xlsx", cfg.Output)
	assert.Empty(t, cfg.NatsURL)
}

func TestLoadConfig_File(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "source: /data/export.csv\noutput: /data/schema.xlsx\nnats_url: nats://localhost:4222\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := loadConfig(flags{ConfigFile: path})

	require.NoError(t, err)
	assert.Equal(t, "/data/export.csv", cfg.Source)
	assert.Equal(t, "/data/schema.xlsx", cfg.Output)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
}

func TestLoadConfig_FlagsOverrideEnvAndFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("COMM_ETL_SOURCE", "/env/export.csv")

	cfg, err := loadConfig(flags{Source: "/flag/export.csv", Output: "/flag/out.xlsx"})

	require.NoError(t, err)
	assert.Equal(t, "/flag/export.csv", cfg.Source)
	assert.Equal(t, "/flag/out.xlsx", cfg.Output)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("COMM_ETL_OUTPUT", "/env/out.xlsx")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := loadConfig(flags{})

	require.NoError(t, err)
	assert.Equal(t, "/env/out.xlsx", cfg.Output)
	assert.Equal(t, "nats://broker:4222", cfg.NatsURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearConfigEnv(t)

	_, err := loadConfig(flags{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})

	assert.Error(t, err)
}
