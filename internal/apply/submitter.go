package apply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amishk599/autoapply/internal/model"
)

// DefaultSuccessRate is the probability that a simulated submission succeeds.
const DefaultSuccessRate = 0.9

// Envelope is the message that would be sent to an employer for one job.
// Nothing is ever delivered; it exists so the submission path carries the
// same data a real mailer would need.
type Envelope struct {
	To             string // the posting's application URL
	Subject        string
	Body           string
	AttachmentName string
	Content        string
}

// NewEnvelope assembles the envelope for a customized application.
func NewEnvelope(job model.JobPosting, profile model.Profile, coverLetter, content string) Envelope {
	return Envelope{
		To:             job.JobURL,
		Subject:        fmt.Sprintf("Application for %s - %s", job.JobTitle, profile.Name),
		Body:           coverLetter,
		AttachmentName: fmt.Sprintf("%s_CV_%s.pdf", profile.Name, job.Company),
		Content:        content,
	}
}

// Submitter hands a single envelope to an employer.
type Submitter interface {
	Submit(ctx context.Context, env Envelope) (bool, error)
}

// Ensure SimulatedSubmitter implements Submitter.
var _ Submitter = (*SimulatedSubmitter)(nil)

// SimulatedSubmitter decides each submission's outcome with a weighted coin.
type SimulatedSubmitter struct {
	rnd         model.Rand
	successRate float64
	logger      *slog.Logger
}

// NewSimulatedSubmitter returns a submitter that succeeds with probability
// successRate.
func NewSimulatedSubmitter(rnd model.Rand, successRate float64, logger *slog.Logger) *SimulatedSubmitter {
	return &SimulatedSubmitter{rnd: rnd, successRate: successRate, logger: logger}
}

// Submit reports true when the draw falls below the success rate. It performs
// no I/O.
func (s *SimulatedSubmitter) Submit(ctx context.Context, env Envelope) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("submit %q: %w", env.Subject, err)
	}
	ok := s.rnd.Float64() < s.successRate
	s.logger.Debug("simulated submission",
		"subject", env.Subject,
		"attachment", env.AttachmentName,
		"content_bytes", len(env.Content),
		"ok", ok,
	)
	return ok, nil
}
