package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/autoapply/internal/config"
	"github.com/amishk599/autoapply/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTOAPPLY_CONFIG", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := loadConfig("missing.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadConfig_EnvVarPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "search:\n  job_count: 7\n")
	t.Setenv("AUTOAPPLY_CONFIG", path)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Search.JobCount != 7 {
		t.Errorf("JobCount = %d, want 7", cfg.Search.JobCount)
	}
}

func TestLoadConfig_DotEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("AUTOAPPLY_CONFIG", "")
	t.Cleanup(func() { os.Unsetenv("AUTOAPPLY_TEST_WEBHOOK") })

	writeFile(t, filepath.Join(dir, ".env"), "AUTOAPPLY_TEST_WEBHOOK=https://hooks.slack.com/services/T/B/X\n")
	writeFile(t, filepath.Join(dir, "config.yaml"), "notification:\n  type: slack\n  webhook_url: ${AUTOAPPLY_TEST_WEBHOOK}\n")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("WebhookURL = %q", cfg.Notification.WebhookURL)
	}
}

func TestBuildPipeline(t *testing.T) {
	cfg := config.Default()
	cfg.Apply.Pacing = 0
	cfg.Search.JobCount = 4
	cfg.Seed = 42

	p := buildPipeline(cfg, nil, silentLogger())

	cv := "Jane Doe\njane@example.com\nHealthcare management, hospital administration, patient care, budget management, quality improvement."
	found, err := p.searcher.Search(context.Background(), model.SearchQuery{
		JobTitle:  "Healthcare Manager",
		CVContent: cv,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if found.TotalFound != 4 {
		t.Fatalf("TotalFound = %d, want 4", found.TotalFound)
	}

	res, err := p.applier.Apply(context.Background(), found.Jobs, cv, model.Profile{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applications) != 4 {
		t.Errorf("applications = %d, want 4", len(res.Applications))
	}
}

func TestNotifyPreview(t *testing.T) {
	var out bytes.Buffer
	notifyPreviewCmd.SetOut(&out)
	t.Cleanup(func() { notifyPreviewCmd.SetOut(nil) })

	if err := runNotifyPreview(notifyPreviewCmd, nil); err != nil {
		t.Fatalf("runNotifyPreview: %v", err)
	}
	for _, want := range []string{"Application Dashboard", "Healthcare Operations Manager", "Clinical Services Manager"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("preview missing %q:\n%s", want, out.String())
		}
	}
}
