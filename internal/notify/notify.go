// Package notify carries fire-and-forget user notifications (the toasts of
// a browser UI) from the core to whatever renders them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Severity of a notification.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Notification is a short message for the user.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) {}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Recorder keeps notifications in memory. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

// All returns a copy of everything recorded so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return Notification{}, false
	}
	return r.list[len(r.list)-1], true
}

// Drain returns and clears the recorded notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.list
	r.list = nil
	return out
}

var (
	titleStyles = map[Severity]lipgloss.Style{
		Info:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
	descStyle = lipgloss.NewStyle().Faint(true)
)

// Terminal writes one styled line per notification.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a notifier writing to w (usually stderr).
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{out: w}
}

func (t *Terminal) Notify(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := titleStyles[n.Severity].Render(n.Title)
	if n.Description != "" {
		line += " " + descStyle.Render(n.Description)
	}
	fmt.Fprintln(t.out, line)
}
