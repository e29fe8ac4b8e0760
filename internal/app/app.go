// Package app wires the store, integrations and HTTP server from config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/studiodesk/api"
	"github.com/jacentio/studiodesk/backup"
	"github.com/jacentio/studiodesk/config"
	"github.com/jacentio/studiodesk/fixture"
	"github.com/jacentio/studiodesk/media"
	"github.com/jacentio/studiodesk/reminder"
	"github.com/jacentio/studiodesk/store"
)

// App is a fully wired process.
type App struct {
	Config config.App
	Store  *store.Store
	API    *api.Server

	// Exporter is nil when no backup table is configured.
	Exporter backup.Exporter

	reminders *reminder.Scheduler
	backups   *backup.Scheduler
	logger    *slog.Logger
}

// Option adjusts wiring, mostly for tests.
type Option func(*options)

type options struct {
	batchWriter backup.BatchWriter
	uploader    media.Uploader
}

// WithBatchWriter replaces the DynamoDB client used for backups.
func WithBatchWriter(w backup.BatchWriter) Option {
	return func(o *options) { o.batchWriter = w }
}

// WithUploader replaces the Cloudinary uploader.
func WithUploader(u media.Uploader) Option {
	return func(o *options) { o.uploader = u }
}

// New builds every component. Nothing runs until Start.
func New(ctx context.Context, cfg config.App, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	storeCfg, err := cfg.Store(logger)
	if err != nil {
		return nil, fmt.Errorf("store config: %w", err)
	}
	s := store.New(storeCfg)
	if cfg.Seed {
		ids := fixture.Load(s)
		logger.Info("store seeded", "records", len(ids))
	}

	up := o.uploader
	if up == nil && cfg.Cloudinary.Enabled() {
		cu, err := media.NewCloudinaryUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			return nil, err
		}
		up = cu
	}
	if up == nil {
		logger.Info("media uploads disabled: set STUDIODESK_CLOUDINARY_* to enable")
	}

	a := &App{
		Config: cfg,
		Store:  s,
		API: api.New(api.Options{
			Store:   s,
			Media:   media.NewGallery(s, up, cfg.Cloudinary.Folder, logger),
			Rewards: api.Rewards{Unit: cfg.RewardUnit, FromProgram: cfg.RewardFromProgram},
			Logger:  logger,
			Release: cfg.Level() > slog.LevelDebug,
		}),
		logger: logger,
	}

	if err := a.wireReminders(); err != nil {
		return nil, err
	}
	if err := a.wireBackups(ctx, o.batchWriter); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) wireReminders() error {
	senders := map[store.ReminderType]reminder.Sender{
		store.ReminderEmail: reminder.LogSender{Channel: "email", Logger: a.logger},
		store.ReminderSMS:   reminder.LogSender{Channel: "sms", Logger: a.logger},
	}
	if tw := a.Config.Twilio; tw.Enabled() {
		senders[store.ReminderSMS] = reminder.NewSMSSender(tw.AccountSID, tw.AuthToken, tw.From, a.logger)
	} else {
		a.logger.Info("sms reminders logged only: set STUDIODESK_TWILIO_* to enable")
	}

	sched, err := reminder.NewScheduler(a.Config.ReminderInterval,
		reminder.NewPlanner(a.Store, a.logger),
		reminder.NewDispatcher(a.Store, senders, a.logger),
		a.logger,
	)
	if err != nil {
		return err
	}
	a.reminders = sched
	return nil
}

func (a *App) wireBackups(ctx context.Context, w backup.BatchWriter) error {
	bc := a.Config.Backup
	if !bc.Enabled() {
		a.logger.Info("backups disabled: set STUDIODESK_BACKUP_TABLE to enable")
		return nil
	}

	if w == nil {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if bc.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(bc.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		w = dynamodb.NewFromConfig(awsCfg)
	}

	expCfg := backup.DefaultConfig()
	expCfg.Table = bc.Table
	expCfg.NumShards = bc.Shards
	a.Exporter = backup.NewDynamoExporter(w, expCfg, a.logger)
	a.backups = backup.NewScheduler(a.Store, a.Exporter, a.logger)
	return nil
}

// Start runs the reminder and backup schedules.
func (a *App) Start() error {
	a.reminders.Start()
	if a.backups != nil {
		if err := a.backups.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Stop halts the schedules and the change feed, waiting up to ctx.
func (a *App) Stop(ctx context.Context) {
	a.reminders.Stop(ctx)
	if a.backups != nil {
		a.backups.Stop(ctx)
	}
	a.API.Close()
}

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second
