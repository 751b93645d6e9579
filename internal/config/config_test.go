package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  max_upload_size: 1048576
  write_timeout: 2m
search:
  job_count: 5
  match_threshold: 70
  posting_window: 48h
apply:
  pacing: 250ms
  success_rate: 0.5
seed: 42
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxUploadSize != 1<<20 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want default 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("WriteTimeout = %v, want 2m", cfg.Server.WriteTimeout)
	}
	if cfg.Search.JobCount != 5 || cfg.Search.MatchThreshold != 70 || cfg.Search.PostingWindow != 48*time.Hour {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Apply.Pacing != 250*time.Millisecond || cfg.Apply.SuccessRate != 0.5 {
		t.Errorf("Apply = %+v", cfg.Apply)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log", cfg.Notification.Type)
	}
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("Parse(nil) = %+v, want %+v", cfg, want)
	}
	if cfg.Search.JobCount != 20 || cfg.Apply.Pacing != 500*time.Millisecond || cfg.Apply.SuccessRate != 0.9 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParse_ExplicitZeroes(t *testing.T) {
	cfg, err := Parse([]byte(`
search:
  match_threshold: 0
apply:
  pacing: 0s
  success_rate: 0
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Search.MatchThreshold != 0 || cfg.Apply.Pacing != 0 || cfg.Apply.SuccessRate != 0 {
		t.Errorf("explicit zeroes not kept: search=%+v apply=%+v", cfg.Search, cfg.Apply)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SLACK_WEBHOOK", "https://hooks.slack.com/services/T/B/X")
	cfg, err := Parse([]byte(`
notification:
  type: slack
  webhook_url: ${TEST_SLACK_WEBHOOK}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("WebhookURL = %q", cfg.Notification.WebhookURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "search: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "apply:\n  pacing: soon\n"},
		{"negative pacing", "apply:\n  pacing: -1s\n"},
		{"zero job count", "search:\n  job_count: 0\n"},
		{"threshold above 100", "search:\n  match_threshold: 101\n"},
		{"success rate above 1", "apply:\n  success_rate: 1.5\n"},
		{"success rate negative", "apply:\n  success_rate: -0.1\n"},
		{"negative upload size", "server:\n  max_upload_size: -1\n"},
		{"unknown notifier", "notification:\n  type: email\n"},
		{"slack without webhook", "notification:\n  type: slack\n"},
		{"job count outlives write timeout", "server:\n  write_timeout: 10s\napply:\n  pacing: 1s\nsearch:\n  job_count: 12\n"},
		{"slack bad webhook", "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.content)); err == nil {
				t.Errorf("Parse(%q): expected error", tt.content)
			}
		})
	}
}

func TestMaxPacedBatch(t *testing.T) {
	tests := []struct {
		name         string
		pacing       time.Duration
		writeTimeout time.Duration
		want         int
	}{
		{"defaults", 500 * time.Millisecond, 5 * time.Minute, 601},
		{"pacing disabled", 0, 5 * time.Minute, 0},
		{"exact multiple", time.Second, 10 * time.Second, 11},
		{"pacing longer than timeout", time.Minute, 30 * time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Apply.Pacing = tt.pacing
			cfg.Server.WriteTimeout = tt.writeTimeout
			if got := cfg.MaxPacedBatch(); got != tt.want {
				t.Errorf("MaxPacedBatch() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParse_JobCountAtPacedLimit(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  write_timeout: 10s\napply:\n  pacing: 1s\nsearch:\n  job_count: 11\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.MaxPacedBatch() != 11 {
		t.Errorf("MaxPacedBatch() = %d, want 11", cfg.MaxPacedBatch())
	}
}
