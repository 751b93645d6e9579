package notifier

import (
	"log/slog"

	"github.com/amishk599/autoapply/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes finished applications to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each application via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs one line per application followed by a batch total.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(apps []model.Application) error {
	if len(apps) == 0 {
		return nil
	}
	for _, a := range apps {
		n.logger.Info("application",
			"id", a.ID,
			"company", a.Company,
			"title", a.JobTitle,
			"location", a.Location,
			"status", a.Status,
			"url", a.JobURL,
			"customizations", len(a.Customizations),
		)
	}
	n.logger.Info("application batch", "total", len(apps), "total_applied", model.CountApplied(apps))
	return nil
}
