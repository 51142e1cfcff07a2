package ui

import (
	"fmt"
	"strings"
	"time"

	"mwdl/internal/progress"

	bar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const refreshInterval = 100 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B9D")).
			Bold(true)

	chapterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#82AAFF"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#546E7A"))
)

type tickMsg time.Time

// DoneMsg ends the live view once the orchestrator has finished.
type DoneMsg struct{}

// Model renders one orchestrator run: the overall chapter bar plus one bar
// per active chapter. It only ever reads progress snapshots.
type Model struct {
	title   string
	state   *progress.State
	overall bar.Model
}

func NewModel(title string, state *progress.State) Model {
	return Model{
		title:   title,
		state:   state,
		overall: bar.New(bar.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case DoneMsg:
		return m, tea.Quit

	case tickMsg:
		if m.state.Snapshot().Finished {
			return m, tea.Quit
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	snap := m.state.Snapshot()

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	overall := 0.0
	if snap.ChaptersTotal > 0 {
		overall = float64(snap.ChaptersDone) / float64(snap.ChaptersTotal)
	}

	b.WriteString(fmt.Sprintf("%s %s\n",
		m.overall.ViewAs(overall),
		countStyle.Render(fmt.Sprintf("%d/%d chapters", snap.ChaptersDone, snap.ChaptersTotal)),
	))

	for _, c := range snap.Active {
		inner := 0.0
		if c.Total > 0 {
			inner = float64(c.Done) / float64(c.Total)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n",
			chapterStyle.Render(c.Name),
			m.overall.ViewAs(inner),
			countStyle.Render(fmt.Sprintf("%d/%d pages", c.Done, c.Total)),
		))
	}

	return b.String()
}

// Run renders the live view while fn runs and returns fn's error. The view
// refreshes on a fixed cadence and tears down when fn finishes.
func Run(title string, state *progress.State, fn func() error) error {
	p := tea.NewProgram(NewModel(title, state))

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
		p.Send(DoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}

	return <-errCh
}
