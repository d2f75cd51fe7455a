package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/physworld/internal/config"
	"github.com/san-kum/physworld/internal/experiment"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	keyName = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var paramNames = []string{"dt", "duration"}

type app struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	reg           *experiment.Registry
	live          Model
}

// NewInteractiveApp lists the built-in scenarios, lets the user tune the
// step and duration, then opens the live view.
func NewInteractiveApp() tea.Model {
	return app{
		presets: config.ListPresets(),
		reg:     experiment.NewRegistry(),
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			a.state = stateConfig
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch a.state {
		case stateMenu:
			return a.menuKey(k)
		case stateConfig:
			return a.configKey(k)
		}
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(a.presets) == 0 {
			return a, nil
		}
		a.cfg = config.GetPreset(a.presets[a.cursor])
		a.state, a.paramCursor, a.err = stateConfig, 0, nil
	}
	return a, nil
}

func (a app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(a.editBuf, 64); err == nil && v > 0 {
				a.setParam(v)
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.e-") {
				a.editBuf += s
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(paramNames)-1 {
			a.paramCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, strconv.FormatFloat(a.param(), 'g', -1, 64)
	case "left", "h":
		a.setParam(a.param() / 2)
	case "right", "l":
		a.setParam(a.param() * 2)
	case "s":
		return a.start()
	}
	return a, nil
}

func (a app) param() float64 {
	if paramNames[a.paramCursor] == "dt" {
		return a.cfg.Dt
	}
	return a.cfg.Duration
}

func (a *app) setParam(v float64) {
	if paramNames[a.paramCursor] == "dt" {
		a.cfg.Dt = v
	} else {
		a.cfg.Duration = v
	}
}

func (a app) start() (app, tea.Cmd) {
	if err := a.cfg.Validate(); err != nil {
		a.err = err
		return a, nil
	}
	live, err := NewModel(a.cfg.Clone(), a.reg)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.live, a.state, a.err = live, stateSim, nil
	return a, live.Init()
}

func (a app) View() string {
	switch a.state {
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.live.View()
	}
	return a.viewMenu()
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyName.Render(pairs[i]) + dim.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func banner(title, subtitle string) string {
	return "\n\n    " + cyan.Render(title) + "\n    " + Subtle.Render(subtitle) + "\n    " + Subtle.Render("─────────────────────────") + "\n\n"
}

func (a app) viewMenu() string {
	var b strings.Builder
	b.WriteString(banner("PHYSWORLD", "rigid sphere scenarios"))
	for i, name := range a.presets {
		desc := describe(config.Presets[name])
		if i == a.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", cyan.Render("▸"), white.Render(fmt.Sprintf("%-24s", name)), magenta.Render(desc))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", dim.Render(fmt.Sprintf("  %-24s", name)), dimmer.Render(desc))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func describe(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	return fmt.Sprintf("%d bodies, %s", len(cfg.Bodies), strings.Join(cfg.Interactions, " + "))
}

func (a app) viewConfig() string {
	var b strings.Builder
	b.WriteString(banner(strings.ToUpper(a.cfg.Name), describe(a.cfg)))
	for i, name := range paramNames {
		cur := a
		cur.paramCursor = i
		val := fmt.Sprintf("%10g", cur.param())
		if a.editing && i == a.paramCursor {
			val = fmt.Sprintf("%10s", a.editBuf+"_")
		}
		if i == a.paramCursor {
			fmt.Fprintf(&b, "    %s %s %s\n", cyan.Render("▸"), white.Render(fmt.Sprintf("%-10s", name)), magenta.Bold(true).Render(val))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", dim.Render(fmt.Sprintf("  %-10s", name)), dimmer.Render(val))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + StatusFailed.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "halve/double", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
