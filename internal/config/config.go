package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the autoapply agent.
type Config struct {
	Server       ServerConfig
	Search       SearchConfig
	Apply        ApplyConfig
	Notification NotificationConfig
	Seed         uint64 // 0 seeds from the runtime
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr          string
	MaxUploadSize int64 // bytes
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// SearchConfig controls synthetic job generation and filtering.
type SearchConfig struct {
	JobCount       int
	MatchThreshold int
	PostingWindow  time.Duration // postings are dated within this window before now
}

// ApplyConfig controls the simulated submission loop.
type ApplyConfig struct {
	Pacing      time.Duration // minimum gap between submissions; 0 disables
	SuccessRate float64
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

const (
	defaultAddr           = ":8080"
	defaultMaxUploadSize  = 10 << 20
	defaultReadTimeout    = 30 * time.Second
	defaultWriteTimeout   = 5 * time.Minute
	defaultJobCount       = 20
	defaultMatchThreshold = 60
	defaultPostingWindow  = 30 * 24 * time.Hour
	defaultPacing         = 500 * time.Millisecond
	defaultSuccessRate    = 0.9

	slackWebhookPrefix = "https://hooks.slack.com/"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
// Pointers distinguish an explicit zero from an absent key.
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	Search       rawSearchConfig    `yaml:"search"`
	Apply        rawApplyConfig     `yaml:"apply"`
	Notification NotificationConfig `yaml:"notification"`
	Seed         uint64             `yaml:"seed"`
}

type rawServerConfig struct {
	Addr          string `yaml:"addr"`
	MaxUploadSize int64  `yaml:"max_upload_size"`
	ReadTimeout   string `yaml:"read_timeout"`
	WriteTimeout  string `yaml:"write_timeout"`
}

type rawSearchConfig struct {
	JobCount       *int   `yaml:"job_count"`
	MatchThreshold *int   `yaml:"match_threshold"`
	PostingWindow  string `yaml:"posting_window"`
}

type rawApplyConfig struct {
	Pacing      string   `yaml:"pacing"`
	SuccessRate *float64 `yaml:"success_rate"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          defaultAddr,
			MaxUploadSize: defaultMaxUploadSize,
			ReadTimeout:   defaultReadTimeout,
			WriteTimeout:  defaultWriteTimeout,
		},
		Search: SearchConfig{
			JobCount:       defaultJobCount,
			MatchThreshold: defaultMatchThreshold,
			PostingWindow:  defaultPostingWindow,
		},
		Apply: ApplyConfig{
			Pacing:      defaultPacing,
			SuccessRate: defaultSuccessRate,
		},
		Notification: NotificationConfig{Type: "log"},
	}
}

// MaxPacedBatch returns how many jobs one paced batch can submit before the
// server write timeout expires. Zero means no limit (pacing disabled).
// Larger auto-apply batches still finish, but the client never sees the response.
func (c *Config) MaxPacedBatch() int {
	if c.Apply.Pacing <= 0 {
		return 0
	}
	// The first submission is not delayed.
	return int(c.Server.WriteTimeout/c.Apply.Pacing) + 1
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes. Absent keys keep their defaults and
// ${VAR} references are expanded from the environment.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	var err error

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if raw.Server.MaxUploadSize != 0 {
		cfg.Server.MaxUploadSize = raw.Server.MaxUploadSize
	}
	if cfg.Server.ReadTimeout, err = durationOr(raw.Server.ReadTimeout, cfg.Server.ReadTimeout, "server.read_timeout"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = durationOr(raw.Server.WriteTimeout, cfg.Server.WriteTimeout, "server.write_timeout"); err != nil {
		return nil, err
	}

	if raw.Search.JobCount != nil {
		cfg.Search.JobCount = *raw.Search.JobCount
	}
	if raw.Search.MatchThreshold != nil {
		cfg.Search.MatchThreshold = *raw.Search.MatchThreshold
	}
	if cfg.Search.PostingWindow, err = durationOr(raw.Search.PostingWindow, cfg.Search.PostingWindow, "search.posting_window"); err != nil {
		return nil, err
	}

	if cfg.Apply.Pacing, err = durationOr(raw.Apply.Pacing, cfg.Apply.Pacing, "apply.pacing"); err != nil {
		return nil, err
	}
	if raw.Apply.SuccessRate != nil {
		cfg.Apply.SuccessRate = *raw.Apply.SuccessRate
	}

	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}
	cfg.Seed = raw.Seed

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationOr(s string, def time.Duration, key string) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, s, err)
	}
	return d, nil
}

func validate(cfg *Config) error {
	if cfg.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("server.max_upload_size must be positive, got %d", cfg.Server.MaxUploadSize)
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if cfg.Search.JobCount <= 0 {
		return fmt.Errorf("search.job_count must be positive, got %d", cfg.Search.JobCount)
	}
	if cfg.Search.MatchThreshold < 0 || cfg.Search.MatchThreshold > 100 {
		return fmt.Errorf("search.match_threshold must be between 0 and 100, got %d", cfg.Search.MatchThreshold)
	}
	if cfg.Search.PostingWindow <= 0 {
		return fmt.Errorf("search.posting_window must be positive, got %v", cfg.Search.PostingWindow)
	}

	if cfg.Apply.Pacing < 0 {
		return fmt.Errorf("apply.pacing must not be negative, got %v", cfg.Apply.Pacing)
	}
	if cfg.Apply.SuccessRate < 0 || cfg.Apply.SuccessRate > 1 {
		return fmt.Errorf("apply.success_rate must be between 0 and 1, got %v", cfg.Apply.SuccessRate)
	}

	if limit := cfg.MaxPacedBatch(); limit > 0 && cfg.Search.JobCount > limit {
		return fmt.Errorf("search.job_count %d exceeds the %d jobs a batch paced at %v can submit within server.write_timeout %v",
			cfg.Search.JobCount, limit, cfg.Apply.Pacing, cfg.Server.WriteTimeout)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackWebhookPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackWebhookPrefix)
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	return nil
}
