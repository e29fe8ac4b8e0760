// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/jacentio/studiodesk/internal/ident"
	"github.com/jacentio/studiodesk/store"
)

// Prefix is prepended to every variable name, e.g. STUDIODESK_HTTP_ADDR.
const Prefix = "STUDIODESK"

// ErrUnknownIDStrategy is returned for an IDStrategy other than uuid or sequence.
var ErrUnknownIDStrategy = errors.New("studiodesk: unknown id strategy")

// App holds process configuration.
type App struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Seed     bool   `envconfig:"SEED" default:"true"`

	// LambdaMode selects the Lambda entrypoint: api or backup.
	LambdaMode string `envconfig:"LAMBDA_MODE" default:"api"`

	// Store policies
	ReferralPolicy string `envconfig:"REFERRAL_POLICY" default:"permissive"`
	DeletePolicy   string `envconfig:"DELETE_POLICY" default:"orphan"`
	IDStrategy     string `envconfig:"ID_STRATEGY" default:"uuid"`

	// Referral rewards
	RewardUnit        float64 `envconfig:"REWARD_UNIT" default:"50"`
	RewardFromProgram bool    `envconfig:"REWARD_FROM_PROGRAM" default:"false"`

	ReminderInterval string `envconfig:"REMINDER_INTERVAL" default:"@every 1m"`

	Twilio     Twilio
	Cloudinary Cloudinary
	Backup     Backup
}

// Twilio enables SMS reminders when AccountSID is set.
type Twilio struct {
	AccountSID string `envconfig:"ACCOUNT_SID"`
	AuthToken  string `envconfig:"AUTH_TOKEN"`
	From       string `envconfig:"FROM"`
}

// Enabled reports whether SMS credentials are present.
func (t Twilio) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != ""
}

// Cloudinary enables gallery image uploads when CloudName is set.
type Cloudinary struct {
	CloudName string `envconfig:"CLOUD_NAME"`
	APIKey    string `envconfig:"API_KEY"`
	APISecret string `envconfig:"API_SECRET"`
	Folder    string `envconfig:"FOLDER" default:"studiodesk"`
}

// Enabled reports whether upload credentials are present.
func (c Cloudinary) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Backup enables DynamoDB exports when Table is set.
type Backup struct {
	Table  string `envconfig:"TABLE"`
	Shards int    `envconfig:"SHARDS" default:"1"`
	Region string `envconfig:"REGION"`
}

// Enabled reports whether a backup table is configured.
func (b Backup) Enabled() bool {
	return b.Table != ""
}

// Load reads a .env file when present, then the environment.
func Load(logger *slog.Logger) (App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return App{}, fmt.Errorf("load .env: %w", err)
		}
		logger.Debug("no .env file found")
	}

	var c App
	if err := envconfig.Process(Prefix, &c); err != nil {
		return App{}, fmt.Errorf("process env: %w", err)
	}
	return c, nil
}

// Level parses LogLevel, defaulting to info.
func (c App) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Store builds the store configuration.
func (c App) Store(logger *slog.Logger) (store.Config, error) {
	cfg := store.DefaultConfig()

	rp, err := store.ParseReferralPolicy(c.ReferralPolicy)
	if err != nil {
		return cfg, err
	}
	dp, err := store.ParseDeletePolicy(c.DeletePolicy)
	if err != nil {
		return cfg, err
	}
	cfg.ReferralPolicy = rp
	cfg.DeletePolicy = dp

	switch strings.ToLower(strings.TrimSpace(c.IDStrategy)) {
	case "", "uuid":
		cfg.IDs = ident.UUID{}
	case "sequence":
		cfg.IDs = ident.NewSequence(0)
	default:
		return cfg, fmt.Errorf("%q: %w", c.IDStrategy, ErrUnknownIDStrategy)
	}

	if logger != nil {
		cfg.Logger = logger
	}
	return cfg, nil
}
