package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/seaweed/internal/config"
	"github.com/san-kum/seaweed/internal/forces"
	"github.com/san-kum/seaweed/internal/scene"
)

var presetInfo = map[string]string{
	"reef":  "six lattices, seven fish",
	"calm":  "slow fish, gentle current",
	"storm": "crowded, turbulent water",
	"kelp":  "tall stiff kelp, still water",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var tunables = []string{"seed", "fish", "seaweed", "grid", "dt", "field"}

// App is the full-screen preset picker that launches the live viewer.
type App struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	logger        *slog.Logger
	err           error
	live          Model
}

func NewApp(logger *slog.Logger) *App {
	return &App{
		state:   stateMenu,
		presets: config.ListPresets(),
		logger:  logger,
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.live.Update(msg)
			m.live = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.live.Update(msg)
		m.live = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	name := tunables[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.setParam(name, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		if name != "field" {
			m.editing, m.editBuf = true, formatParam(m.param(name))
		}
	case "left", "h":
		m.nudge(name, -1)
	case "right", "l":
		m.nudge(name, 1)
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *App) param(name string) float64 {
	switch name {
	case "seed":
		return float64(m.cfg.Seed)
	case "fish":
		return float64(m.cfg.Fish.Count)
	case "seaweed":
		return float64(m.cfg.Seaweed.Count)
	case "grid":
		return float64(m.cfg.Seaweed.Grid)
	case "dt":
		return m.cfg.Dt
	}
	return 0
}

func (m *App) setParam(name string, v float64) {
	switch name {
	case "seed":
		m.cfg.Seed = int64(v)
	case "fish":
		m.cfg.Fish.Count = max(int(v), 0)
	case "seaweed":
		m.cfg.Seaweed.Count = max(int(v), 0)
	case "grid":
		m.cfg.Seaweed.Grid = max(int(v), 1)
	case "dt":
		if v > 0 {
			m.cfg.Dt = v
		}
	}
}

func (m *App) nudge(name string, dir int) {
	switch name {
	case "field":
		kinds := forces.Kinds()
		i := 0
		for j, k := range kinds {
			if k == m.cfg.Environment.Field {
				i = j
			}
		}
		m.cfg.Environment.Field = kinds[(i+dir+len(kinds))%len(kinds)]
	case "dt":
		m.setParam(name, m.cfg.Dt+float64(dir)*0.005)
	default:
		m.setParam(name, m.param(name)+float64(dir))
	}
}

func formatParam(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3f", v)
}

func (m *App) start() tea.Cmd {
	opts, err := m.cfg.SceneOptions(m.logger)
	if err != nil {
		m.err = err
		return nil
	}
	s, err := scene.New(opts)
	if err != nil {
		m.err = err
		return nil
	}
	m.live = NewModel(s, m.selected)
	m.state = stateSim
	return m.live.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

var (
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸")
	activeName = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	activeDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleName   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleName.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("SEAWEED") + "\n    " + subStyle.Render("spring-mass reef") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorMark, activeName.Render(fmt.Sprintf("%-10s", name)), activeDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleName.Render(fmt.Sprintf("  %-10s", name)), idleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.selected)) + "\n    " + subStyle.Render(presetInfo[m.selected]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range tunables {
		valStr := fmt.Sprintf("%8s", formatParam(m.param(name)))
		if name == "field" {
			valStr = fmt.Sprintf("%8s", m.cfg.Environment.Field)
		}
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorMark, activeName.Render(fmt.Sprintf("%-10s", name)), activeDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleName.Render(fmt.Sprintf("  %-10s", name)), idleDesc.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusFailed.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset picker.
func RunInteractive(logger *slog.Logger) error {
	_, err := tea.NewProgram(NewApp(logger), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// RunLive opens the viewer directly on a prepared scene.
func RunLive(s *scene.Scene, title string) error {
	_, err := tea.NewProgram(NewModel(s, title), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
