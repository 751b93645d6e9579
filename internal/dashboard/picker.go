package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/autoapply/internal/model"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerModel struct {
	jobs      []model.JobPosting
	checked   []bool
	cursor    int
	confirmed bool
}

func newPickerModel(jobs []model.JobPosting) pickerModel {
	checked := make([]bool, len(jobs))
	for i := range checked {
		checked[i] = true
	}
	return pickerModel{jobs: jobs, checked: checked}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.confirmed = false
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
			}
		case " ", "space", "x":
			if len(m.checked) > 0 {
				m.checked[m.cursor] = !m.checked[m.cursor]
			}
		case "a":
			all := !m.allChecked()
			for i := range m.checked {
				m.checked[i] = all
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) allChecked() bool {
	for _, c := range m.checked {
		if !c {
			return false
		}
	}
	return true
}

func (m pickerModel) selected() []model.JobPosting {
	var out []model.JobPosting
	for i, j := range m.jobs {
		if m.checked[i] {
			out = append(out, j)
		}
	}
	return out
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(fmt.Sprintf("Select jobs to apply for (%d found)", len(m.jobs))))
	b.WriteByte('\n')

	for i, j := range m.jobs {
		box := "[ ]"
		if m.checked[i] {
			box = "[x]"
		}
		label := fmt.Sprintf("%s %s · %s · %s", box, j.JobTitle, j.Company, j.Location)
		if i == m.cursor {
			b.WriteString(pickerSelectedStyle.Render("> " + label))
		} else {
			b.WriteString(pickerItemStyle.Render(label))
		}
		b.WriteByte('\n')
	}

	b.WriteString(pickerHintStyle.Render("↑/↓/j/k navigate  space toggle  a all/none  enter apply  q quit"))
	return b.String()
}

// RunJobPicker lets the user choose which postings to apply for. All are
// selected initially. Returns nil if the user quit without confirming.
func RunJobPicker(jobs []model.JobPosting) ([]model.JobPosting, error) {
	result, err := tea.NewProgram(newPickerModel(jobs)).Run()
	if err != nil {
		return nil, err
	}

	final := result.(pickerModel)
	if !final.confirmed {
		return nil, nil
	}
	return final.selected(), nil
}
