package viz

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"
	"github.com/san-kum/physworld/internal/config"
	"github.com/san-kum/physworld/internal/experiment"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func newLive(t *testing.T, duration float64) Model {
	t.Helper()
	cfg := config.GetPreset("two_body_collision")
	cfg.Duration = duration
	m, err := NewModel(cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestLiveStepsOnTick(t *testing.T) {
	g := NewWithT(t)
	m := newLive(t, 10)
	g.Expect(m.history).To(HaveLen(1))
	g.Expect(m.running).To(BeTrue())

	m = send(m, TickMsg{})
	g.Expect(m.history).To(HaveLen(2))
	g.Expect(m.system.CurrentTime()).To(BeNumerically("~", 0.01, 1e-12))
	g.Expect(m.trails["a"]).To(HaveLen(2))

	m = send(m, key('+'), key('+'), TickMsg{})
	g.Expect(m.substeps).To(Equal(4))
	g.Expect(m.system.CurrentTime()).To(BeNumerically("~", 0.05, 1e-12))

	m = send(m, key('-'), key('-'), key('-'))
	g.Expect(m.substeps).To(Equal(1))
}

func TestLivePauseAndReset(t *testing.T) {
	g := NewWithT(t)
	m := newLive(t, 10)

	m = send(m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg{})
	g.Expect(m.running).To(BeFalse())
	g.Expect(m.history).To(HaveLen(1))

	m = send(m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg{}, TickMsg{}, key('r'))
	g.Expect(m.running).To(BeTrue())
	g.Expect(m.history).To(HaveLen(1))
	g.Expect(m.system.CurrentTime()).To(BeZero())
}

func TestLiveReplay(t *testing.T) {
	g := NewWithT(t)
	m := send(newLive(t, 10), TickMsg{}, TickMsg{})

	m = send(m, key('['))
	g.Expect(m.running).To(BeFalse())
	g.Expect(m.playHead).To(Equal(1))
	g.Expect(m.current().Time).To(BeNumerically("~", 0.01, 1e-12))
	g.Expect(m.status()).To(ContainSubstring("REPLAY PAUSED"))

	m = send(m, key('['), key('['))
	g.Expect(m.playHead).To(Equal(0))

	m = send(m, key(']'), key(']'), key(']'))
	g.Expect(m.playHead).To(Equal(-1))
}

func TestLiveStopsAtDuration(t *testing.T) {
	g := NewWithT(t)
	m := send(newLive(t, 0.02), TickMsg{}, TickMsg{}, TickMsg{})
	g.Expect(m.done).To(BeTrue())
	g.Expect(m.running).To(BeFalse())
	g.Expect(m.system.CurrentTime()).To(BeNumerically("~", 0.02, 1e-12))

	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	g.Expect(m.running).To(BeFalse())
	g.Expect(m.status()).To(ContainSubstring("DONE"))
}

func TestLiveView(t *testing.T) {
	g := NewWithT(t)
	m := send(newLive(t, 10), TickMsg{}, key('?'))
	view := m.View()
	g.Expect(view).To(ContainSubstring("TWO_BODY_COLLISION"))
	g.Expect(view).To(ContainSubstring("RUNNING"))
	g.Expect(view).To(ContainSubstring("pause or resume"))
}

func TestLiveThemeKey(t *testing.T) {
	g := NewWithT(t)
	defer SetTheme(CurrentTheme.Name)
	before := CurrentTheme.Name
	send(newLive(t, 10), key('t'))
	g.Expect(CurrentTheme.Name).NotTo(Equal(before))
	g.Expect(ThemeNames()).To(ContainElement(CurrentTheme.Name))
}

func TestSummaryAndPlots(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("two_body_collision")
	cfg.Duration = 1
	exp := experiment.New(cfg)
	g.Expect(exp.Setup(experiment.NewRegistry())).To(Succeed())
	res, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	summary := Summary(cfg.Name, res)
	g.Expect(summary).To(ContainSubstring("TWO_BODY_COLLISION"))
	g.Expect(summary).To(ContainSubstring("energy drift"))
	g.Expect(summary).To(ContainSubstring("energy_drift"))

	lines := strings.Split(Bodies(res.History[len(res.History)-1].Entities), "\n")
	g.Expect(lines[0]).To(ContainSubstring("a"))
	g.Expect(lines[1]).To(ContainSubstring("b"))

	g.Expect(TrajectoryPlot(res.History, 40, 8)).To(ContainSubstring("x location"))
	g.Expect(EnergyPlot(res.History, 40, 8)).To(ContainSubstring("total energy"))
	g.Expect(EnergySeries(res.History)).To(HaveLen(len(res.History)))

	g.Expect(TrajectoryPlot(res.History[:1], 40, 8)).To(BeEmpty())
	g.Expect(EnergyPlot(nil, 40, 8)).To(BeEmpty())
}
