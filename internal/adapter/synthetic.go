package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/vocab"
)

// DefaultJobCount is the number of postings generated per search.
const DefaultJobCount = 20

// DefaultPostingWindow bounds how far back generated posting dates go.
const DefaultPostingWindow = 30 * 24 * time.Hour

var whitespaceRegex = regexp.MustCompile(`\s+`)

// SyntheticAdapter generates fictitious healthcare management postings from
// the vocab tables. It never performs network I/O.
type SyntheticAdapter struct {
	count  int
	window time.Duration
	rnd    model.Rand
	now    func() time.Time
}

// NewSyntheticAdapter creates a generator producing count postings dated
// within window of now.
func NewSyntheticAdapter(count int, window time.Duration, rnd model.Rand) *SyntheticAdapter {
	return &SyntheticAdapter{
		count:  count,
		window: window,
		rnd:    rnd,
		now:    time.Now,
	}
}

// FetchJobs returns a fresh batch of postings. Company and title cycle through
// their tables by index; location, posted date, and match score are random.
// The query's title, location, and keywords do not shape the batch.
func (a *SyntheticAdapter) FetchJobs(ctx context.Context, _ model.SearchQuery) ([]model.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("synthetic fetch: %w", err)
	}

	now := a.now()
	jobs := make([]model.JobPosting, 0, a.count)
	for i := 0; i < a.count; i++ {
		company := vocab.Companies[i%len(vocab.Companies)]
		position := vocab.Positions[i%len(vocab.Positions)]

		jobs = append(jobs, model.JobPosting{
			ID:           fmt.Sprintf("job-%d", i+1),
			JobTitle:     position,
			Company:      company,
			Location:     vocab.Cities[a.rnd.IntN(len(vocab.Cities))],
			Salary:       fmt.Sprintf("$%d - $%d", 80000+i*5000, 120000+i*8000),
			Description:  describe(position, company),
			Requirements: append([]string(nil), vocab.Requirements...),
			PostedDate:   now.Add(-time.Duration(a.rnd.Float64() * float64(a.window))),
			JobURL:       careersURL(company, i+1),
			MatchScore:   60 + int(a.rnd.Float64()*40),
		})
	}
	return jobs, nil
}

// CareersHost returns the careers site host used for company's postings.
func CareersHost(company string) string {
	return "careers." + whitespaceRegex.ReplaceAllString(strings.ToLower(company), "") + ".com"
}

func careersURL(company string, n int) string {
	return fmt.Sprintf("https://%s/job-%d", CareersHost(company), n)
}

func describe(position, company string) string {
	return fmt.Sprintf(`%s is seeking an experienced %s to join our healthcare team.

The successful candidate will oversee daily operations, manage staff, ensure regulatory compliance,
and drive quality improvement initiatives. This role requires strong leadership skills, healthcare
industry knowledge, and the ability to work in a fast-paced environment.

Responsibilities include:
- Managing healthcare operations and staff
- Ensuring compliance with healthcare regulations (HIPAA, Joint Commission)
- Implementing quality improvement programs
- Budget management and financial oversight
- Collaborating with medical staff and department heads
- Analyzing operational metrics and implementing improvements`, company, position)
}
