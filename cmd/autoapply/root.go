package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/adapter"
	"github.com/amishk599/autoapply/internal/apply"
	"github.com/amishk599/autoapply/internal/config"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/notifier"
	"github.com/amishk599/autoapply/internal/pacing"
	"github.com/amishk599/autoapply/internal/search"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "autoapply",
	Short: "Healthcare job search and auto-apply",
	Long:  "Autoapply matches a CV against healthcare management postings and submits tailored applications.",
	// With no subcommand the HTTP API is served.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: AUTOAPPLY_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > AUTOAPPLY_CONFIG env var > "./config.yaml".
// A missing ./config.yaml yields the built-in defaults; an explicit path must exist.
func loadConfig(path string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if path == "" {
		path = os.Getenv("AUTOAPPLY_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = defaultConfigPath
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// pipeline is the search and apply stages wired from one config.
type pipeline struct {
	searcher *search.Searcher
	applier  *apply.Applier
}

func buildPipeline(cfg *config.Config, n model.Notifier, logger *slog.Logger) pipeline {
	rnd := model.NewRand(cfg.Seed)
	fetcher := adapter.NewSyntheticAdapter(cfg.Search.JobCount, cfg.Search.PostingWindow, rnd)
	submitter := apply.NewSimulatedSubmitter(rnd, cfg.Apply.SuccessRate, logger)

	logger.Debug("pipeline configured",
		"job_count", cfg.Search.JobCount,
		"match_threshold", cfg.Search.MatchThreshold,
		"pacing", cfg.Apply.Pacing.String(),
		"success_rate", cfg.Apply.SuccessRate,
		"seed", cfg.Seed,
	)

	return pipeline{
		searcher: search.NewSearcher(fetcher, cfg.Search.MatchThreshold, logger),
		applier:  apply.NewApplier(submitter, pacing.Policy{MinGap: cfg.Apply.Pacing}, n, logger),
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
