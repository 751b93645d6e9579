package customize

import (
	"strings"
	"text/template"
)

const objectiveTmpl = `

OBJECTIVE:
Experienced healthcare professional seeking {{.JobTitle}} position at {{.Company}}. Bringing proven expertise in healthcare operations, regulatory compliance, and team leadership to drive excellence in patient care and operational efficiency.

`

const competenciesTmpl = `

KEY COMPETENCIES FOR {{upper .JobTitle}}:
{{range $i, $k := .Keywords}}{{if $i}}
{{end}}• {{$k}}{{end}}

`

const coverLetterTmpl = `Dear Hiring Manager,

I am writing to express my strong interest in the {{.JobTitle}} position at {{.Company}}.
With over {{.Years}} years of experience in healthcare management,
I am confident in my ability to contribute to your team's success.

My background includes extensive experience in:
- Healthcare operations and administration
- Regulatory compliance and quality assurance
- Staff leadership and development
- Budget management and financial oversight

I am particularly drawn to {{.Company}}'s commitment to excellence in patient care and would
welcome the opportunity to contribute to your organization's mission.

Thank you for considering my application. I look forward to discussing how my experience and
skills align with your needs.

Sincerely,
{{.Name}}
{{.Email}}
{{.Phone}}`

var templates = template.Must(
	template.New("customize").
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		Parse(`{{define "objective"}}` + objectiveTmpl + `{{end}}` +
			`{{define "competencies"}}` + competenciesTmpl + `{{end}}` +
			`{{define "cover_letter"}}` + coverLetterTmpl + `{{end}}`),
)
