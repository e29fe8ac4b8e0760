// Command studiodesk-lambda serves the studio API from API Gateway, or runs
// scheduled backups, depending on STUDIODESK_LAMBDA_MODE.
//
// Every execution environment builds its own in-memory store. In api mode,
// writes are visible only to requests served by the same instance and are
// gone after a cold start; backup mode exports the seed or whatever that
// instance holds. Use the long-running studiodesk server when several
// clients need one shared store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/studiodesk/backup"
	"github.com/jacentio/studiodesk/config"
	"github.com/jacentio/studiodesk/internal/app"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("wire app", "error", err)
		os.Exit(1)
	}

	handler, err := selectHandler(a, logger)
	if err != nil {
		logger.Error("select handler", "error", err)
		os.Exit(1)
	}
	lambda.Start(handler)
}

func selectHandler(a *app.App, logger *slog.Logger) (any, error) {
	switch a.Config.LambdaMode {
	case "", "api":
		return a.API.LambdaHandler(), nil
	case "backup":
		if a.Exporter == nil {
			return nil, errors.New("backup mode needs STUDIODESK_BACKUP_TABLE")
		}
		return backup.NewHandler(a.Store, a.Exporter, logger).HandleScheduled, nil
	default:
		return nil, fmt.Errorf("unknown lambda mode %q", a.Config.LambdaMode)
	}
}
