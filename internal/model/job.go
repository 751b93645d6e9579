package model

import (
	"context"
	"time"
)

// JobPosting is a single synthetic job listing returned by a search.
type JobPosting struct {
	ID           string    `json:"id"` // unique within one generation batch
	JobTitle     string    `json:"jobTitle"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	PostedDate   time.Time `json:"postedDate"`
	JobURL       string    `json:"jobUrl"`
	MatchScore   int       `json:"matchScore"` // generated score in [60,100), not the filter heuristic
}

// SearchQuery is what the client sends to the job search.
type SearchQuery struct {
	JobTitle  string
	Location  string
	Keywords  string
	CVContent string
	Profile   Profile
}

// JobFetcher produces job postings for a query.
type JobFetcher interface {
	FetchJobs(ctx context.Context, query SearchQuery) ([]JobPosting, error)
}

// Notifier reports a finished application batch.
type Notifier interface {
	Notify(apps []Application) error
}
