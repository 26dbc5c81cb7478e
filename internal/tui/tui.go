// Package tui is the interactive terminal host for a Viewer. It drives the
// viewer clock from a bubbletea tick and maps keys to transport and camera
// controls.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/teardown/internal/viewer"
)

// Manual control step sizes per key press.
const (
	orbitStep = 20
	zoomStep  = 1
	panStep   = 5
)

type tickMsg time.Time

// Model is the bubbletea model wrapping a Viewer.
type Model struct {
	v        *viewer.Viewer
	interval time.Duration
	last     time.Time
	width    int
	hint     string
}

// New creates a model ticking the viewer fps times per second.
func New(v *viewer.Viewer, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{v: v, interval: time.Second / time.Duration(fps)}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(v *viewer.Viewer, fps int) error {
	_, err := tea.NewProgram(New(v, fps), tea.WithAltScreen()).Run()
	return err
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.v.Tick(dt)
		return m, tick(m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.hint = ""
	moved := true

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter":
		m.v.TogglePlay()
	case "s":
		m.v.Stop()
	case "left", "p":
		m.v.Previous()
	case "right", "n":
		m.v.Next()
	case "home":
		m.v.Seek(0)
	case "end":
		m.v.Seek(m.v.Snapshot().StepCount - 1)
	case "h":
		moved = m.v.Orbit(-orbitStep, 0)
	case "l":
		moved = m.v.Orbit(orbitStep, 0)
	case "k":
		moved = m.v.Orbit(0, orbitStep)
	case "j":
		moved = m.v.Orbit(0, -orbitStep)
	case "+", "=":
		moved = m.v.Zoom(zoomStep)
	case "-", "_":
		moved = m.v.Zoom(-zoomStep)
	case "w":
		moved = m.v.Pan(panStep, 0, 0)
	case "x":
		moved = m.v.Pan(-panStep, 0, 0)
	case "a":
		moved = m.v.Pan(0, -panStep, 0)
	case "d":
		moved = m.v.Pan(0, panStep, 0)
	}
	if !moved {
		m.hint = "camera is moving"
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.v.Snapshot()
	var b strings.Builder

	title := "teardown"
	if s.Product != "" {
		title += " · " + s.Product
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if s.SceneError != "" {
		b.WriteString(placeholderStyle.Render("Select a product to view its disassembly\n" + s.SceneError))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	b.WriteString(panelStyle.Render(m.readout(s)))
	b.WriteString("\n")

	help := "space play/pause · s stop · ←/→ step · h/j/k/l orbit · +/- zoom · w/a/x/d pan · q quit"
	if m.hint != "" {
		help = m.hint + " · " + help
	}
	if m.width > 0 {
		b.WriteString(helpStyle.Width(m.width).Render(help))
	} else {
		b.WriteString(helpStyle.Render(help))
	}
	return b.String()
}

func (m Model) readout(s viewer.Snapshot) string {
	status, ok := statusStyles[s.Status]
	if !ok {
		status = statusStyles["stopped"]
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	rows := []string{
		row("status", status.Render(strings.ToUpper(s.Status))),
		row("step", StepIndicator(s)),
	}

	parts := "none"
	if len(s.Highlighted) > 0 {
		parts = partStyle.Render(strings.Join(s.Highlighted, ", "))
	}
	rows = append(rows, row("highlight", parts))

	cam := fmt.Sprintf("pos %s  target %s", vec(s.Camera.Position), vec(s.Camera.Target))
	if s.Camera.Animating {
		cam += "  (moving)"
	}
	rows = append(rows, row("camera", cam))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// StepIndicator renders "Step i of n - part", or a dash when there are no
// steps.
func StepIndicator(s viewer.Snapshot) string {
	if s.StepCount == 0 {
		return "-"
	}
	out := fmt.Sprintf("Step %d of %d", s.Step+1, s.StepCount)
	if s.CurrentPart != "" {
		out += " - " + s.CurrentPart
	}
	return out
}

func vec(v [3]float32) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
