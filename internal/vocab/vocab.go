// Package vocab holds the fixed tables that drive profile extraction, job
// generation, and CV customization.
package vocab

import (
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

// Skills is matched against uploaded CV text to build Profile.Skills.
var Skills = []string{
	"healthcare management",
	"hospital administration",
	"patient care",
	"budget management",
	"staff supervision",
	"regulatory compliance",
	"quality improvement",
	"EMR/EHR systems",
	"HIPAA",
	"Joint Commission",
	"strategic planning",
	"operations management",
}

// Competencies is matched against job descriptions and requirements when
// building the key competencies section of a customized CV.
var Competencies = []string{
	"Healthcare Management",
	"Hospital Administration",
	"Patient Care Excellence",
	"Regulatory Compliance",
	"HIPAA",
	"Quality Improvement",
	"Budget Management",
	"Staff Leadership",
	"EMR/EHR Systems",
	"Operations Management",
	"Strategic Planning",
	"Joint Commission Standards",
	"Process Optimization",
	"Team Development",
	"Risk Management",
}

// HealthcareKeywords each add to the heuristic CV match score.
var HealthcareKeywords = []string{"healthcare", "hospital", "clinical", "medical", "patient"}

// ManagementKeywords add a one-time bonus to the heuristic CV match score.
var ManagementKeywords = []string{"manager", "management"}

// Companies are cycled through when generating postings.
var Companies = []string{
	"Mayo Clinic",
	"Cleveland Clinic",
	"Johns Hopkins Medicine",
	"Massachusetts General Hospital",
	"Kaiser Permanente",
	"UnitedHealth Group",
	"HCA Healthcare",
	"Ascension Health",
	"CommonSpirit Health",
	"Trinity Health",
}

// Positions are cycled through when generating postings.
var Positions = []string{
	"Healthcare Operations Manager",
	"Clinical Services Manager",
	"Hospital Administrator",
	"Healthcare Program Manager",
	"Patient Services Manager",
	"Healthcare Quality Manager",
	"Medical Practice Manager",
	"Healthcare Facility Manager",
}

// Cities are drawn at random for posting locations.
var Cities = []string{
	"New York, NY",
	"Los Angeles, CA",
	"Chicago, IL",
	"Houston, TX",
	"Phoenix, AZ",
	"Philadelphia, PA",
	"San Antonio, TX",
	"San Diego, CA",
	"Dallas, TX",
	"Boston, MA",
}

// Requirements is the requirement list attached to every generated posting.
var Requirements = []string{
	"Bachelor's degree in Healthcare Administration or related field",
	"5+ years of healthcare management experience",
	"Knowledge of healthcare regulations and compliance",
	"Strong leadership and communication skills",
	"Experience with EMR/EHR systems",
	"Budget management experience",
	"Master's degree preferred (MHA, MBA, or MPH)",
}

// RequirementHighlight pairs a requirement trigger word with the customization
// recorded when any requirement mentions it.
type RequirementHighlight struct {
	Trigger string
	Change  string
}

// Highlights are checked in order against a job's requirements.
var Highlights = []RequirementHighlight{
	{Trigger: "budget", Change: "Highlighted budget management and financial oversight experience"},
	{Trigger: "compliance", Change: "Emphasized regulatory compliance and HIPAA expertise"},
	{Trigger: "leadership", Change: "Showcased leadership accomplishments and team management skills"},
}

// DefaultName is used when a CV has no non-blank line.
const DefaultName = "Healthcare Professional"

// DefaultLocation is assigned to every extracted profile.
const DefaultLocation = "United States"

// PlaceholderExperience stands in for real work-history extraction.
var PlaceholderExperience = model.Experience{
	Title:       "Healthcare Manager",
	Years:       "5+",
	Description: "Extensive experience in healthcare management",
}

// ContainedIn returns the entries of terms that appear case-insensitively in
// text, preserving table order and spelling.
func ContainedIn(terms []string, text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			found = append(found, t)
		}
	}
	return found
}
