package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"starstream/internal/media"
	"starstream/internal/playback"
)

const refreshEvery = 500 * time.Millisecond

type refreshMsg struct{}

// WatchModel is the builtin player screen over a playback session.
// Space toggles play/pause, c clears the saved progress and q quits.
type WatchModel struct {
	ctx     context.Context
	session *playback.Session
	bar     progress.Model
	state   playback.State
	status  string
	err     error
}

// NewWatchModel creates the screen. The session is closed when the user quits.
func NewWatchModel(ctx context.Context, s *playback.Session) WatchModel {
	return WatchModel{
		ctx:     ctx,
		session: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		state:   s.Snapshot(),
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m WatchModel) Init() tea.Cmd {
	return refresh()
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.session.Close()
			m.state = m.session.Snapshot()
			return m, tea.Quit
		case " ", "p":
			m.err = m.session.Toggle()
			m.status = ""
		case "c":
			m.err = m.session.Clear(m.ctx, "")
			if m.err == nil {
				m.status = "progress cleared"
			}
		}
		m.state = m.session.Snapshot()
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-10, 10), 80)
		return m, nil

	case refreshMsg:
		m.state = m.session.Snapshot()
		return m, refresh()
	}
	return m, nil
}

var (
	watchTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	watchHelp  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	watchErr   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m WatchModel) View() string {
	t := m.session.Title()
	state := "⏸ paused"
	if m.state.Playing {
		state = "▶ playing"
	}

	clock := media.FormatClock(m.state.CurrentTime)
	if m.state.Duration > 0 {
		clock += " / " + media.FormatClock(m.state.Duration)
	}

	s := watchTitle.Render(t.Title) + "\n\n"
	s += m.bar.ViewAs(float64(m.state.Percent)/100) + "\n"
	s += fmt.Sprintf("%s  %s  %d%%\n", state, clock, m.state.Percent)
	if m.status != "" {
		s += watchHelp.Render(m.status) + "\n"
	}
	if m.err != nil {
		s += watchErr.Render(m.err.Error()) + "\n"
	}
	s += "\n" + watchHelp.Render("space play/pause · c clear progress · q quit") + "\n"
	return s
}

// State returns the last snapshot the screen showed.
func (m WatchModel) State() playback.State {
	return m.state
}

// Watch runs the screen until the user quits.
func Watch(ctx context.Context, s *playback.Session) error {
	_, err := tea.NewProgram(NewWatchModel(ctx, s), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("running player: %w", err)
	}
	return nil
}
