package dashboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/autoapply/internal/model"
)

// Lines per application in the list pane (title + subtitle + blank separator).
const appItemHeight = 3

const (
	paneList = iota
	paneDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle   = headerStyle.Foreground(lipgloss.Color("39"))
	inactiveHeaderStyle = headerStyle.Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle    = lipgloss.NewStyle().Bold(true)
	itemSubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(12)

	sectionDividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	bodyStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type dashboardModel struct {
	apps         []model.Application
	listViewport viewport.Model
	detailView   viewport.Model
	activePane   int
	cursor       int
	width        int
	height       int
	ready        bool
	openURL      func(string)
}

func newDashboardModel(apps []model.Application) dashboardModel {
	return dashboardModel{apps: apps, openURL: openURL}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "left", "right":
			m.activePane = 1 - m.activePane
			m.recalcContent()
			return m, nil
		case "o":
			if app, ok := m.selected(); ok && app.JobURL != "" {
				m.openURL(app.JobURL)
			}
			return m, nil
		}

		if m.activePane == paneList {
			switch msg.String() {
			case "up", "k":
				m.moveCursor(-1)
				return m, nil
			case "down", "j":
				m.moveCursor(1)
				return m, nil
			}
		}
	}

	// Forward remaining keys (pgup/pgdn/home/end, arrows in detail) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == paneList {
		m.listViewport, cmd = m.listViewport.Update(msg)
	} else {
		m.detailView, cmd = m.detailView.Update(msg)
	}
	return m, cmd
}

func (m dashboardModel) selected() (model.Application, bool) {
	if len(m.apps) == 0 {
		return model.Application{}, false
	}
	return m.apps[m.cursor], true
}

func (m *dashboardModel) moveCursor(delta int) {
	next := clamp(m.cursor+delta, 0, max(len(m.apps)-1, 0))
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.recalcContent()
	m.detailView.SetYOffset(0)
	m.ensureCursorVisible()
}

func (m *dashboardModel) ensureCursorVisible() {
	top := m.cursor * appItemHeight
	bottom := top + appItemHeight - 1

	if top < m.listViewport.YOffset {
		m.listViewport.SetYOffset(top)
	} else if bottom >= m.listViewport.YOffset+m.listViewport.Height {
		m.listViewport.SetYOffset(bottom - m.listViewport.Height + 1)
	}
}

func (m *dashboardModel) recalcLayout() {
	// List takes a third of the width; 2 border chars per pane + 1 gap.
	listWidth := max((m.width-5)/3, 24)
	detailWidth := max(m.width-5-listWidth, 30)

	// Header (1 line) + border top/bottom (2) + status bar (1).
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(listWidth, paneHeight)
		m.detailView = viewport.New(detailWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = listWidth
		m.listViewport.Height = paneHeight
		m.detailView.Width = detailWidth
		m.detailView.Height = paneHeight
	}

	m.recalcContent()
}

func (m *dashboardModel) recalcContent() {
	m.listViewport.SetContent(renderApplications(m.apps, m.cursor, m.activePane == paneList))
	if app, ok := m.selected(); ok {
		m.detailView.SetContent(renderDetail(app, m.detailView.Width))
	} else {
		m.detailView.SetContent("  (no application selected)")
	}
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	c := Count(m.apps)
	listHeader := fmt.Sprintf(" Applications (%d)", c.Total)
	detailHeader := " Details"

	listHeaderStyle, detailHeaderStyle := activeHeaderStyle, inactiveHeaderStyle
	listBorder, detailBorder := activeBorderStyle, inactiveBorderStyle
	if m.activePane == paneDetail {
		listHeaderStyle, detailHeaderStyle = inactiveHeaderStyle, activeHeaderStyle
		listBorder, detailBorder = inactiveBorderStyle, activeBorderStyle
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listViewport.Width+2).Render(listHeaderStyle.Render(listHeader)),
		" ",
		lipgloss.NewStyle().Width(m.detailView.Width+2).Render(detailHeaderStyle.Render(detailHeader)),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listBorder.Width(m.listViewport.Width).Render(m.listViewport.View()),
		" ",
		detailBorder.Width(m.detailView.Width).Render(m.detailView.View()),
	)

	statusText := fmt.Sprintf(" %d applied | %d pending | %d failed    Tab switch  ↑/↓ move  o open URL  q quit",
		c.Applied, c.Pending, c.Failed)
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func renderApplications(apps []model.Application, cursor int, isActive bool) string {
	if len(apps) == 0 {
		return "  (no applications)"
	}

	var b strings.Builder
	for i, a := range apps {
		titleSt, subtitleSt, prefix := itemTitleStyle, itemSubtitleStyle, "  "
		if isActive && i == cursor {
			titleSt, subtitleSt, prefix = selectedTitleStyle, selectedSubtitleStyle, "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(a.JobTitle))
		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(a.Company + " · "))
		b.WriteString(statusLabel(a.Status))
		b.WriteByte('\n')

		if i < len(apps)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderDetail(a model.Application, width int) string {
	var b strings.Builder
	wrapWidth := max(width-2, 20)

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	divider := func(label string) {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		b.WriteString("\n" + sectionDividerStyle.Render(label+fill) + "\n\n")
	}

	addField("Position", a.JobTitle)
	addField("Company", a.Company)
	addField("Location", a.Location)
	b.WriteString(detailLabelStyle.Render("Status"))
	b.WriteString(statusLabel(a.Status))
	b.WriteByte('\n')
	if !a.AppliedAt.IsZero() {
		addField("Applied", a.AppliedAt.Local().Format("2006-01-02 15:04"))
	}
	addField("Job URL", a.JobURL)
	addField("ID", a.ID)

	if len(a.Customizations) > 0 {
		divider("── CV Customizations ")
		for _, c := range a.Customizations {
			b.WriteString(bodyStyle.Render("  ✓ "+c) + "\n")
		}
	}

	if a.CoverLetter != "" {
		divider("── Cover Letter ")
		b.WriteString(bodyStyle.Render(a.CoverLetter) + "\n")
	}

	if a.CustomizedCVContent != "" {
		divider("── Customized CV ")
		b.WriteString(bodyStyle.Render(strings.TrimSpace(a.CustomizedCVContent)) + "\n")
	}

	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunDashboardTUI launches the interactive application dashboard in the alt
// screen and blocks until the user quits.
func RunDashboardTUI(apps []model.Application) error {
	_, err := tea.NewProgram(newDashboardModel(apps), tea.WithAltScreen()).Run()
	return err
}
