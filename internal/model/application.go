package model

import "time"

// ApplicationStatus is the terminal state of a submitted application.
type ApplicationStatus string

const (
	StatusApplied ApplicationStatus = "applied"
	StatusFailed  ApplicationStatus = "failed"
	StatusPending ApplicationStatus = "pending"
)

// Application records one simulated submission. It is created once per job
// and never mutated afterwards.
type Application struct {
	ID                  string            `json:"id"`
	JobTitle            string            `json:"jobTitle"`
	Company             string            `json:"company"`
	Location            string            `json:"location"`
	Status              ApplicationStatus `json:"status"`
	AppliedAt           time.Time         `json:"appliedAt"`
	Customizations      []string          `json:"customizations"`
	JobURL              string            `json:"jobUrl"`
	CustomizedCVContent string            `json:"customizedCVContent"`
	CoverLetter         string            `json:"coverLetter,omitempty"`
}

// CountApplied returns how many applications ended in StatusApplied.
func CountApplied(apps []Application) int {
	n := 0
	for _, a := range apps {
		if a.Status == StatusApplied {
			n++
		}
	}
	return n
}
