package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/model"
)

var searchFlags queryFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search once, print matches, exit",
	Long:  "One-shot search: ingests the CV, prints matched postings and exits. Nothing is submitted.",
	RunE:  runSearch,
}

func init() {
	searchFlags.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	_, query, err := searchFlags.build()
	if err != nil {
		logger.Error("failed to read cv", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := buildPipeline(cfg, nil, logger)
	res, err := p.searcher.Search(ctx, query)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	printJobs(res.Jobs)
	return nil
}

func printJobs(jobs []model.JobPosting) {
	fmt.Printf("%-36s %-22s %-18s %-7s %s\n", "Title", "Company", "Location", "Match", "Posted")
	fmt.Println(strings.Repeat("─", 96))
	for _, j := range jobs {
		fmt.Printf("%-36s %-22s %-18s %-7s %s\n",
			j.JobTitle, j.Company, j.Location, fmt.Sprintf("%d%%", j.MatchScore), j.PostedDate.Format("2006-01-02"))
	}
	fmt.Printf("\nTotal: %d matching jobs\n", len(jobs))
}
