// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/logging"
)

// flags are the command line flags for the comm ETL service.
type flags struct {
	Debug      bool
	ConfigFile string
	Source     string
	Output     string
	NatsURL    string
}

// config is the file-backed configuration for the comm ETL service. Flags and
// environment variables override file values.
type config struct {
	Source  string `yaml:"source"`
	Output  string `yaml:"output"`
	NatsURL string `yaml:"nats_url"`
}

// Default file locations when neither flags, environment, nor the config
// file set them.
const (
	defaultSource = "raw_data.csv"
	defaultOutput = "star_schema_output.xlsx"
)

// parseFlags parses command line flags for the comm ETL service.
func parseFlags() flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var configFile = flag.String("c", "", "path to YAML config file")
	var source = flag.String("source", "", "path to the raw CSV export")
	var output = flag.String("out", "", "path for the output workbook")
	var natsURL = flag.String("nats", "", "NATS server URL for table publication (optional)")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by
	// [logging.InitStructureLogConfig].
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug:      *debug,
		ConfigFile: *configFile,
		Source:     *source,
		Output:     *output,
		NatsURL:    *natsURL,
	}
}

// loadConfig resolves the effective configuration from file, environment,
// and flags, in increasing precedence.
func loadConfig(f flags) (config, error) {
	cfg := config{
		Source: defaultSource,
		Output: defaultOutput,
	}

	if f.ConfigFile != "" {
		data, err := os.ReadFile(f.ConfigFile)
		if err != nil {
			return config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return config{}, err
		}
	}

	if v := os.Getenv("COMM_ETL_SOURCE"); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv("COMM_ETL_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NatsURL = v
	}

	if f.Source != "" {
		cfg.Source = f.Source
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.NatsURL != "" {
		cfg.NatsURL = f.NatsURL
	}

	return cfg, nil
}
