package filter

import (
	"strings"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/vocab"
)

const (
	// BaseScore is the heuristic score of a CV with no matching keywords.
	BaseScore = 60
	// DefaultThreshold is the score a CV must exceed for postings to be kept.
	DefaultThreshold = 60

	keywordBonus    = 5
	managementBonus = 10
	maxScore        = 100
)

// HeuristicScore rates how well CV text fits a healthcare management role:
// BaseScore, +5 per healthcare keyword present, +10 once if any management
// keyword is present, capped at 100. Matching is case-insensitive.
//
// This is not JobPosting.MatchScore; the generated score and this one are
// computed independently.
func HeuristicScore(cvContent string) int {
	lower := strings.ToLower(cvContent)

	score := BaseScore
	for _, kw := range vocab.HealthcareKeywords {
		if strings.Contains(lower, kw) {
			score += keywordBonus
		}
	}
	for _, kw := range vocab.ManagementKeywords {
		if strings.Contains(lower, kw) {
			score += managementBonus
			break
		}
	}
	return min(score, maxScore)
}

// CVMatchFilter keeps postings when the CV's heuristic score is strictly
// greater than the threshold.
type CVMatchFilter struct {
	score     int
	threshold int
}

// NewCVMatchFilter scores cvContent once and returns a filter for one search.
func NewCVMatchFilter(cvContent string, threshold int) *CVMatchFilter {
	return &CVMatchFilter{
		score:     HeuristicScore(cvContent),
		threshold: threshold,
	}
}

// Score returns the heuristic score the filter was built with.
func (f *CVMatchFilter) Score() int {
	return f.score
}

// Match reports whether the posting passes. The heuristic depends only on the
// CV, so a search keeps either every posting or none.
func (f *CVMatchFilter) Match(_ model.JobPosting) bool {
	return f.score > f.threshold
}
