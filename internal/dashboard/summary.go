package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/amishk599/autoapply/internal/model"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Align(lipgloss.Center)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// statusColor maps an application status to its display color.
func statusColor(s model.ApplicationStatus) lipgloss.Color {
	switch s {
	case model.StatusApplied:
		return lipgloss.Color("42") // green
	case model.StatusFailed:
		return lipgloss.Color("196") // red
	default:
		return lipgloss.Color("214") // amber
	}
}

func statusLabel(s model.ApplicationStatus) string {
	return lipgloss.NewStyle().Foreground(statusColor(s)).Bold(true).Render(strings.ToUpper(string(s)))
}

// Counts tallies applications per status.
type Counts struct {
	Total   int
	Applied int
	Failed  int
	Pending int
}

// Count returns per-status totals for apps.
func Count(apps []model.Application) Counts {
	c := Counts{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case model.StatusApplied:
			c.Applied++
		case model.StatusFailed:
			c.Failed++
		case model.StatusPending:
			c.Pending++
		}
	}
	return c
}

func statBox(label string, n int, color lipgloss.Color) string {
	return statBoxStyle.BorderForeground(color).Render(
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", n)) + "\n" + label,
	)
}

// Summary renders the batch totals and one table row per application.
func Summary(apps []model.Application) string {
	c := Count(apps)

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Total", c.Total, lipgloss.Color("39")),
		" ",
		statBox("Applied", c.Applied, statusColor(model.StatusApplied)),
		" ",
		statBox("Pending", c.Pending, statusColor(model.StatusPending)),
		" ",
		statBox("Failed", c.Failed, statusColor(model.StatusFailed)),
	)

	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("Application Dashboard"))
	b.WriteByte('\n')
	b.WriteString(stats)
	b.WriteByte('\n')

	if len(apps) == 0 {
		b.WriteString("\nNo applications yet.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, []string{
			a.JobTitle,
			a.Company,
			a.Location,
			statusLabel(a.Status),
			a.AppliedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", len(a.Customizations)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Position", "Company", "Location", "Status", "Applied", "Changes").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	b.WriteString(t.Render())
	b.WriteByte('\n')
	return b.String()
}
