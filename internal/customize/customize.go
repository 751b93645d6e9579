// Package customize tailors CV text to a specific job posting and records
// each change it makes.
package customize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/vocab"
)

const (
	maxCompetencies     = 8
	maxEmphasizedSkills = 3
	defaultYears        = "5+"
)

// Result is a customized CV and the ordered list of changes applied to it.
type Result struct {
	Content string
	Changes []string
}

// Keywords returns the competency vocabulary entries found in the posting's
// description and requirements.
func Keywords(job model.JobPosting) []string {
	text := job.Description + " " + strings.Join(job.Requirements, " ")
	return vocab.ContainedIn(vocab.Competencies, text)
}

// Customize builds a job-specific copy of cvContent: an objective paragraph is
// prepended, a key competencies section appended, and every step is recorded
// in Changes.
func Customize(cvContent string, job model.JobPosting, profile model.Profile) (Result, error) {
	keywords := Keywords(job)
	var changes []string

	objective, err := render("objective", job)
	if err != nil {
		return Result{}, err
	}
	content := objective + cvContent
	changes = append(changes, fmt.Sprintf("Added tailored objective statement for %s role", job.JobTitle))

	if relevant := relevantSkills(profile.Skills, keywords); len(relevant) > 0 {
		shown := relevant[:min(len(relevant), maxEmphasizedSkills)]
		changes = append(changes, fmt.Sprintf("Emphasized %d relevant skills: %s", len(relevant), strings.Join(shown, ", ")))
	}

	competencies, err := render("competencies", struct {
		JobTitle string
		Keywords []string
	}{
		JobTitle: job.JobTitle,
		Keywords: keywords[:min(len(keywords), maxCompetencies)],
	})
	if err != nil {
		return Result{}, err
	}
	content += competencies
	changes = append(changes, "Added key competencies section matching job requirements")

	for _, h := range vocab.Highlights {
		if mentions(job.Requirements, h.Trigger) {
			changes = append(changes, h.Change)
		}
	}

	changes = append(changes, fmt.Sprintf("Customized content to align with %s's values and requirements", job.Company))

	return Result{Content: content, Changes: changes}, nil
}

// CoverLetter renders the letter sent alongside an application.
func CoverLetter(job model.JobPosting, profile model.Profile) (string, error) {
	years := defaultYears
	if len(profile.Experience) > 0 && profile.Experience[0].Years != "" {
		years = profile.Experience[0].Years
	}

	return render("cover_letter", struct {
		JobTitle string
		Company  string
		Years    string
		Name     string
		Email    string
		Phone    string
	}{
		JobTitle: job.JobTitle,
		Company:  job.Company,
		Years:    years,
		Name:     profile.Name,
		Email:    profile.Email,
		Phone:    profile.Phone,
	})
}

// relevantSkills returns the profile skills containing any job keyword.
func relevantSkills(skills, keywords []string) []string {
	var out []string
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, skill)
				break
			}
		}
	}
	return out
}

func mentions(requirements []string, word string) bool {
	for _, req := range requirements {
		if strings.Contains(strings.ToLower(req), word) {
			return true
		}
	}
	return false
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
