package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user interrupts a running batch view.
var ErrCancelled = errors.New("cancelled")

type workDoneMsg struct {
	err error
}

type loaderModel struct {
	label   string
	work    func(ctx context.Context) error
	spinner spinner.Model
	err     error
	done    bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.run(), m.spinner.Tick)
}

func (m loaderModel) run() tea.Cmd {
	work := m.work
	return func() tea.Msg {
		return workDoneMsg{err: work(context.Background())}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.label)
}

// RunApplying shows a spinner labelled label while work runs. It renders
// inline (no alt screen). Pressing ctrl+c returns ErrCancelled; work itself
// is not interrupted.
func RunApplying(label string, work func(ctx context.Context) error) error {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
	)
	m := loaderModel{label: label, work: work, spinner: s}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	return result.(loaderModel).err
}
