package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/seaweed/internal/metrics"
	"github.com/san-kum/seaweed/internal/scene"
)

const (
	defaultWidth    = 80
	defaultHeight   = 30
	minWidth        = 20
	minHeight       = 8
	statsWidth      = 48
	historyCapacity = 600

	// FrameInterval matches the simulation step of the default scene.
	FrameInterval = 25 * time.Millisecond

	// canvas offset inside the rendered view, from canvasStyle padding
	canvasLeft = 2
	canvasTop  = 1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the interactive viewer: it steps the scene on every tick and
// renders it onto a Braille canvas next to a stats panel.
type Model struct {
	scene         *scene.Scene
	title         string
	canvas        *Canvas
	view          *Viewport
	energy        *metrics.KineticEnergy
	locked        *metrics.LockedFraction
	maxSpeed      *metrics.MaxSpeed
	energyHistory []float64
	countHistory  []float64
	running       bool
	showHelp      bool
	err           error
}

func NewModel(s *scene.Scene, title string) Model {
	m := Model{
		scene:         s,
		title:         title,
		energy:        metrics.NewKineticEnergy(),
		locked:        metrics.NewLockedFraction(),
		maxSpeed:      metrics.NewMaxSpeed(),
		energyHistory: make([]float64, 0, historyCapacity),
		countHistory:  make([]float64, 0, historyCapacity),
		running:       true,
	}
	s.AddMetric(m.energy)
	s.AddMetric(m.locked)
	s.AddMetric(m.maxSpeed)
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) resize(w, h int) {
	w, h = max(w, minWidth), max(h, minHeight)
	m.canvas = NewCanvas(w, h)
	m.view = NewViewport(m.canvas, m.scene.Bounds())
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-2*canvasLeft, msg.Height-2*canvasTop-1)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	player := m.scene.Player()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "w", "up":
		player.Thrust(0, scene.ThrustStep)
	case "s", "down":
		player.Thrust(0, -scene.ThrustStep)
	case "a", "left":
		player.Thrust(-scene.ThrustStep, 0)
	case "d", "right":
		player.Thrust(scene.ThrustStep, 0)
	case "f":
		player.Halt()
	case "o":
		player.SetOrbiting(true)
	case "b":
		m.setErr(m.scene.SpawnBubbles(player.Pos))
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse spawns a lattice on left click and bubbles on right click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	left, top := m.canvasOrigin()
	col, row := msg.X-left, msg.Y-top
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	pos := m.view.Unproject(col, row)

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.setErr(m.scene.SpawnLattice(pos))
	case tea.MouseButtonRight:
		m.setErr(m.scene.SpawnBubbles(pos))
	}
}

// canvasOrigin is the screen cell of the canvas' top-left corner. The help
// block, when shown, sits above the canvas and pushes it down.
func (m Model) canvasOrigin() (int, int) {
	top := canvasTop
	if m.showHelp {
		top += helpHeight
	}
	return canvasLeft, top
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.err = err
	}
}

// step advances the scene one frame and records the panel history.
func (m *Model) step() {
	if err := m.scene.Step(); err != nil {
		m.err = err
		m.running = false
		return
	}

	m.energyHistory = appendCapped(m.energyHistory, m.energy.Last())
	m.countHistory = appendCapped(m.countHistory, float64(m.scene.Systems().ParticleCount()))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	m.setErr(m.scene.Reset())
	m.energyHistory = m.energyHistory[:0]
	m.countHistory = m.countHistory[:0]
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.scene.Render(m.view)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	label, value := labelStyle(), valueStyle()
	row := func(name, v string) string { return label.Render(name) + value.Render(v) + "\n" }

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = StatusFailed.Render("ERROR")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	clk := m.scene.Clock()
	s.WriteString(row("Time", fmt.Sprintf("%.2fs", clk.Elapsed)))
	s.WriteString(row("Frame", fmt.Sprintf("%d", clk.Frame)))
	s.WriteString(row("Systems", fmt.Sprintf("%d", m.scene.Systems().Len())))
	s.WriteString(row("Particles", fmt.Sprintf("%d", m.scene.Systems().ParticleCount())))
	s.WriteString(row("Fish", fmt.Sprintf("%d", len(m.scene.Fish()))))
	s.WriteString(row("Energy", fmt.Sprintf("%.1f", m.energy.Last())))
	s.WriteString(row("Max speed", fmt.Sprintf("%.1f", m.maxSpeed.Value())))
	s.WriteString(label.Render("Locked") + ProgressBar(m.locked.Value(), 20) + value.Render(fmt.Sprintf(" %.0f%%", 100*m.locked.Value())) + "\n")

	player := m.scene.Player()
	mode := "drift"
	if player.Orbiting {
		mode = "orbit"
	}
	s.WriteString(row("Player", fmt.Sprintf("%s (%.0f, %.0f)", mode, player.Vel.X, player.Vel.Y)))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}
	s.WriteString(SparklineChart(m.countHistory, 30) + "\n")

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Width(40).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle().Render(Separator(30) + "\nSP:Pause R:Reset Q:Quit\nWASD:Swim F:Stop O:Orbit\nB:Bubbles T:Theme ?:Help"))
	statsView := statsStyle().Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpText + helpGap + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset scene              ║
║  Q        - Quit                     ║
║  W/A/S/D  - Thrust the player        ║
║  F        - Stop the player          ║
║  O        - Orbit                    ║
║  B        - Bubbles at the player    ║
║  Click    - Plant seaweed            ║
║  R-Click  - Release bubbles          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

const helpGap = "\n\n"

// helpHeight is the number of screen rows the help block adds above the view.
var helpHeight = strings.Count(helpText+helpGap, "\n")

// Running reports whether the viewer is advancing the scene.
func (m Model) Running() bool { return m.running }

func (m Model) Err() error { return m.err }

// Canvas exposes the render target for the current frame.
func (m Model) Canvas() *Canvas { return m.canvas }

var _ scene.Canvas = (*Viewport)(nil)
