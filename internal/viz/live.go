package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/physworld/internal/config"
	"github.com/san-kum/physworld/internal/experiment"
	"github.com/san-kum/physworld/internal/physics"
	"github.com/san-kum/physworld/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	statsWidth      = 46
	historyCapacity = 600
	trailLength     = 40
	maxSubsteps     = 64
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// viewport is the rectangle of the x-y plane shown on the canvas.
type viewport struct {
	minX, minY, maxX, maxY float64
}

// fitViewport frames every sphere with a margin. Degenerate extents grow to
// one metre so a single resting body still gets a sensible scale.
func fitViewport(entities []*physics.Entity) viewport {
	v := viewport{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, e := range entities {
		st := e.State()
		r := 0.0
		if st.Shape.IsSphere() {
			r = st.Shape.Radius
		}
		v.minX = math.Min(v.minX, st.Location.X()-r)
		v.maxX = math.Max(v.maxX, st.Location.X()+r)
		v.minY = math.Min(v.minY, st.Location.Y()-r)
		v.maxY = math.Max(v.maxY, st.Location.Y()+r)
	}
	if len(entities) == 0 {
		v = viewport{-1, -1, 1, 1}
	}
	grow := func(lo, hi float64) (float64, float64) {
		if hi-lo < 1 {
			mid := (lo + hi) / 2
			lo, hi = mid-0.5, mid+0.5
		}
		pad := 0.1 * (hi - lo)
		return lo - pad, hi + pad
	}
	v.minX, v.maxX = grow(v.minX, v.maxX)
	v.minY, v.maxY = grow(v.minY, v.maxY)
	return v
}

// project maps a world point to canvas dots, keeping the aspect ratio and
// pointing y up. It also returns the metres-to-dots scale.
func (v viewport) project(p mgl64.Vec3, cw, ch int) (int, int, float64) {
	w, h := v.maxX-v.minX, v.maxY-v.minY
	s := math.Min(float64(cw-1)/w, float64(ch-1)/h)
	ox := (float64(cw-1) - s*w) / 2
	oy := (float64(ch-1) - s*h) / 2
	x := ox + (p.X()-v.minX)*s
	y := oy + (v.maxY-p.Y())*s
	return int(math.Round(x)), int(math.Round(y)), s
}

// Model steps a System in real time and draws its spheres on a braille
// canvas, with a short trail behind each body.
type Model struct {
	name     string
	cfg      *config.Config
	reg      *experiment.Registry
	system   *sim.System
	dt       float64
	substeps int
	running  bool
	done     bool
	canvas   *Canvas
	view     viewport
	trails   map[string][]mgl64.Vec3
	energy   []float64
	history  []sim.Snapshot
	playHead int
	showHelp bool
	err      error
}

// NewModel builds the scenario's system and frames its bodies.
func NewModel(cfg *config.Config, reg *experiment.Registry) (Model, error) {
	sys, err := experiment.BuildSystem(cfg, reg)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		name:     cfg.Name,
		cfg:      cfg,
		reg:      reg,
		system:   sys,
		dt:       cfg.Dt,
		substeps: 1,
		running:  true,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		playHead: -1,
	}
	m.restart(sys)
	return m, nil
}

func (m *Model) restart(sys *sim.System) {
	m.system = sys
	m.done = false
	m.playHead = -1
	m.trails = make(map[string][]mgl64.Vec3)
	m.energy = make([]float64, 0, historyCapacity)
	m.history = make([]sim.Snapshot, 0, historyCapacity)
	m.view = fitViewport(sys.Entities())
	m.record()
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "+", "=":
			m.substeps = min(m.substeps*2, maxSubsteps)
		case "-", "_":
			m.substeps = max(m.substeps/2, 1)
		case "f":
			m.view = fitViewport(m.current().Entities)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsWidth-8, 20)
		h := max(msg.Height-4, 8)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.advance()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

// advance runs substeps fixed steps of dt and stops at the scenario's end.
func (m *Model) advance() {
	for i := 0; i < m.substeps; i++ {
		if m.system.CurrentTime() >= m.cfg.Duration-m.dt/2 {
			m.done, m.running = true, false
			break
		}
		m.system.NextState(m.dt)
	}
	m.record()
}

func (m *Model) record() {
	snap := sim.Snapshot{Time: m.system.CurrentTime(), Entities: m.system.Entities()}
	m.history = append(m.history, snap)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.energy = append(m.energy, physics.TotalEnergy(snap.Entities))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
	for _, e := range snap.Entities {
		trail := append(m.trails[e.ID()], e.State().Location)
		if len(trail) > trailLength {
			trail = trail[1:]
		}
		m.trails[e.ID()] = trail
	}
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	sys, err := experiment.BuildSystem(m.cfg, m.reg)
	if err != nil {
		m.err = err
		return
	}
	m.running = true
	m.restart(sys)
}

func (m Model) current() sim.Snapshot {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.history[len(m.history)-1]
}

func (m Model) draw(snap sim.Snapshot) {
	m.canvas.Clear()
	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	for _, e := range snap.Entities {
		for _, p := range m.trails[e.ID()] {
			x, y, _ := m.view.project(p, cw, ch)
			m.canvas.Set(x, y)
		}
	}
	for _, e := range snap.Entities {
		st := e.State()
		x, y, s := m.view.project(st.Location, cw, ch)
		r := 0
		if st.Shape.IsSphere() {
			r = int(math.Round(st.Shape.Radius * s))
		}
		m.canvas.DrawCircle(x, y, r)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	snap := m.current()
	m.draw(snap)
	canvasView := canvasStyle.Render(m.canvas.String())

	theme := CurrentTheme
	var s strings.Builder
	s.WriteString(colored(theme.Title).Bold(true).Render(strings.ToUpper(m.name)) + "\n\n")
	s.WriteString(m.status() + "\n")
	progress := 1.0
	if m.cfg.Duration > 0 {
		progress = snap.Time / m.cfg.Duration
	}
	s.WriteString(ProgressBar(progress, 30) + "\n\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.3fs", snap.Time))
	row("dt", fmt.Sprintf("%gs x%d", m.dt, m.substeps))
	row("energy", fmt.Sprintf("%.6g J", physics.TotalEnergy(snap.Entities)))
	row("|momentum|", fmt.Sprintf("%.6g", physics.TotalMomentum(snap.Entities).Len()))
	s.WriteString("\n" + SparklineChart(m.energy, 30) + "\n\n")
	s.WriteString(Bodies(snap.Entities))
	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit\n+/-:Speed F:Fit T:Theme\n[ ]:Replay ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return Panel.Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `Space  pause or resume
R      rebuild the scenario from t=0
+ -    double or halve steps per frame
F      refit the view to the bodies
[ ]    step back or forward through history
T      cycle themes
Q      quit`

func (m Model) status() string {
	switch {
	case m.playHead != -1:
		latest := m.history[len(m.history)-1].Time
		label := "REPLAY"
		if !m.running {
			label = "REPLAY PAUSED"
		}
		return StatusPaused.Render(fmt.Sprintf("%s (%.2fs)", label, m.history[m.playHead].Time-latest))
	case m.done:
		return StatusRunning.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

// RunLive opens the live view of one scenario.
func RunLive(cfg *config.Config) error {
	m, err := NewModel(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
