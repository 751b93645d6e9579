package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/apply"
	"github.com/amishk599/autoapply/internal/dashboard"
	"github.com/amishk599/autoapply/internal/model"
)

var (
	runFlags queryFlags
	runTUI   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search and apply in one pass",
	Long: `Ingest a CV, search for matching postings and submit a tailored application
to each one. With --tui, pick postings interactively and browse the results in
a dashboard; otherwise a summary table is printed.`,
	RunE: runRun,
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "pick jobs and browse results interactively")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cv, query, err := runFlags.build()
	if err != nil {
		logger.Error("failed to read cv", "error", err)
		os.Exit(1)
	}

	// Log lines would tear the interactive views.
	pipelineLogger := logger
	if runTUI {
		pipelineLogger = silentLogger()
	}
	n := setupNotifier(cfg, newHTTPClient(), pipelineLogger)
	p := buildPipeline(cfg, n, pipelineLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	found, err := p.searcher.Search(ctx, query)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	jobs := found.Jobs
	if runTUI && len(jobs) > 0 {
		jobs, err = dashboard.RunJobPicker(jobs)
		if err != nil {
			logger.Error("job picker error", "error", err)
			os.Exit(1)
		}
		if jobs == nil {
			fmt.Println("No jobs selected.")
			return nil
		}
	}

	var result apply.Result
	work := func(ctx context.Context) error {
		var err error
		result, err = p.applier.Apply(ctx, jobs, cv.CVContent, cv.Profile)
		return err
	}

	if runTUI {
		label := fmt.Sprintf("Customizing CV and applying to %d jobs", len(jobs))
		err = dashboard.RunApplying(label, func(context.Context) error { return work(ctx) })
	} else {
		err = work(ctx)
	}
	if errors.Is(err, dashboard.ErrCancelled) || errors.Is(err, context.Canceled) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err != nil {
		logger.Error("auto-apply failed", "error", err)
		os.Exit(1)
	}

	return showApplications(result.Applications)
}

func showApplications(apps []model.Application) error {
	if runTUI && len(apps) > 0 {
		return dashboard.RunDashboardTUI(apps)
	}
	fmt.Print(dashboard.Summary(apps))
	return nil
}
