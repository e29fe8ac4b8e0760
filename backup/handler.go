package backup

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/studiodesk/store"
)

// Handler runs backups from scheduled EventBridge rules.
type Handler struct {
	store    *store.Store
	exporter Exporter
	logger   *slog.Logger
}

// NewHandler creates a new backup handler.
func NewHandler(s *store.Store, exp Exporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    s,
		exporter: exp,
		logger:   logger,
	}
}

// HandleScheduled exports the store once per invocation.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleScheduled(ctx context.Context, event events.CloudWatchEvent) error {
	res, err := Run(ctx, h.store, h.exporter, "")
	if err != nil {
		h.logger.Error("scheduled backup failed",
			"eventID", event.ID,
			"error", err,
		)
		return err // Will retry
	}
	if res.Skipped {
		h.logger.Info("scheduled backup skipped",
			"eventID", event.ID,
			"reason", res.Reason,
		)
		return nil
	}

	h.logger.Info("scheduled backup complete",
		"eventID", event.ID,
		"backupID", res.Manifest.BackupID,
		"items", res.Manifest.Items,
	)
	return nil
}
