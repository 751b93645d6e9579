// Package apply simulates submitting customized applications for a batch of
// job postings.
package apply

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/autoapply/internal/customize"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
)

// Result is the outcome of one application batch.
type Result struct {
	Applications []model.Application
	TotalApplied int
}

// Applier customizes, paces and submits applications one job at a time.
type Applier struct {
	submitter Submitter
	pacing    pacing.Policy
	notifier  model.Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// NewApplier creates an Applier. notifier may be nil.
func NewApplier(submitter Submitter, policy pacing.Policy, notifier model.Notifier, logger *slog.Logger) *Applier {
	return &Applier{
		submitter: submitter,
		pacing:    policy,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Apply processes jobs in order and returns one Application per job. Any
// error discards the whole batch.
func (a *Applier) Apply(ctx context.Context, jobs []model.JobPosting, cvContent string, profile model.Profile) (Result, error) {
	pacer := a.pacing.NewBatch()
	apps := make([]model.Application, 0, len(jobs))

	for _, job := range jobs {
		app, err := a.applyOne(ctx, pacer, job, cvContent, profile)
		if err != nil {
			return Result{}, fmt.Errorf("applying to %s at %s: %w", job.JobTitle, job.Company, err)
		}
		apps = append(apps, app)
	}

	res := Result{Applications: apps, TotalApplied: model.CountApplied(apps)}
	a.logger.Info("application batch complete",
		"jobs", len(jobs),
		"total_applied", res.TotalApplied,
		"failed", len(apps)-res.TotalApplied,
	)

	if a.notifier != nil && len(apps) > 0 {
		if err := a.notifier.Notify(apps); err != nil {
			a.logger.Error("notification failed", "error", err)
		}
	}

	return res, nil
}

func (a *Applier) applyOne(ctx context.Context, pacer *pacing.Pacer, job model.JobPosting, cvContent string, profile model.Profile) (model.Application, error) {
	custom, err := customize.Customize(cvContent, job, profile)
	if err != nil {
		return model.Application{}, err
	}
	letter, err := customize.CoverLetter(job, profile)
	if err != nil {
		return model.Application{}, err
	}

	if err := pacer.Wait(ctx); err != nil {
		return model.Application{}, err
	}

	ok, err := a.submitter.Submit(ctx, NewEnvelope(job, profile, letter, custom.Content))
	if err != nil {
		return model.Application{}, err
	}

	status := model.StatusFailed
	if ok {
		status = model.StatusApplied
	}
	a.logger.Debug("application recorded",
		"company", job.Company,
		"title", job.JobTitle,
		"status", status,
		"customizations", len(custom.Changes),
	)

	return model.Application{
		ID:                  "app-" + uuid.NewString(),
		JobTitle:            job.JobTitle,
		Company:             job.Company,
		Location:            job.Location,
		Status:              status,
		AppliedAt:           a.now(),
		Customizations:      custom.Changes,
		JobURL:              job.JobURL,
		CustomizedCVContent: custom.Content,
		CoverLetter:         letter,
	}, nil
}
