// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the communication ETL service: it transforms a flat
// communication/meeting event export into an analytics-ready star schema
// workbook and optionally publishes the built tables over NATS.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/infrastructure/export"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/infrastructure/ingest"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-comm-etl-service/internal/service"
)

func main() {
	f := parseFlags()

	logging.InitStructureLogConfig()

	cfg, err := loadConfig(f)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error loading configuration")
		os.Exit(1)
	}

	ctx := context.Background()

	var publisher domain.TablePublisher
	if cfg.NatsURL != "" {
		natsConn, err := nats.Connect(cfg.NatsURL,
			nats.Name("lfx-v2-comm-etl-service"),
			nats.MaxReconnects(3),
		)
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error connecting to NATS")
			os.Exit(1)
		}
		defer natsConn.Drain() //nolint:errcheck
		publisher = messaging.NewMessageBuilder(natsConn)
	}

	etlService := service.NewETLService(
		ingest.NewCSVReader(cfg.Source),
		export.NewXLSXWriter(cfg.Output),
		publisher,
	)

	slog.InfoContext(ctx, "starting transformation",
		"source", cfg.Source,
		"output", cfg.Output,
		"publish", cfg.NatsURL != "",
	)

	if _, err := etlService.Run(ctx); err != nil {
		slog.With(logging.ErrKey, err).Error("transformation run failed")
		os.Exit(1)
	}
}
