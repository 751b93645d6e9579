// Package search runs the job matching pipeline: fetch → score → filter.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/autoapply/internal/filter"
	"github.com/amishk599/autoapply/internal/model"
)

// Result is the outcome of one search.
type Result struct {
	Jobs       []model.JobPosting
	TotalFound int
}

// Searcher owns the matching pipeline for a single job source.
type Searcher struct {
	fetcher   model.JobFetcher
	threshold int
	logger    *slog.Logger
}

// NewSearcher creates a searcher that keeps postings whose CV heuristic score
// exceeds threshold.
func NewSearcher(fetcher model.JobFetcher, threshold int, logger *slog.Logger) *Searcher {
	return &Searcher{
		fetcher:   fetcher,
		threshold: threshold,
		logger:    logger,
	}
}

// Search fetches postings for the query and keeps those the CV filter accepts.
// The result's Jobs is never nil.
func (s *Searcher) Search(ctx context.Context, query model.SearchQuery) (Result, error) {
	jobs, err := s.fetcher.FetchJobs(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("searching jobs: %w", err)
	}

	f := filter.NewCVMatchFilter(query.CVContent, s.threshold)

	matched := make([]model.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if f.Match(job) {
			matched = append(matched, job)
		}
	}

	s.logger.Info("searched jobs",
		"title", query.JobTitle,
		"location", query.Location,
		"fetched", len(jobs),
		"matched", len(matched),
		"heuristic_score", f.Score(),
		"threshold", s.threshold,
	)

	return Result{Jobs: matched, TotalFound: len(matched)}, nil
}
