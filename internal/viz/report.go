package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/physworld/internal/dynamo"
	"github.com/san-kum/physworld/internal/physics"
	"github.com/san-kum/physworld/internal/sim"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Blue,
}

// Summary renders the outcome of a run: conservation drift, metric values
// and the final state of every body.
func Summary(name string, res *sim.Result) string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(name)) + "\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("steps", fmt.Sprintf("%d", res.StepsTaken))
	if n := len(res.History); n > 0 {
		row("time", fmt.Sprintf("%.4fs", res.History[n-1].Time))
	}
	row("energy drift", fmt.Sprintf("%.6f%%", 100*res.EnergyDrift))
	row("momentum drift", fmt.Sprintf("%.6f%%", 100*res.MomentumDrift))

	if len(res.Metrics) > 0 {
		names := make([]string, 0, len(res.Metrics))
		for k := range res.Metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		s.WriteString("\n")
		for _, k := range names {
			row(k, fmt.Sprintf("%.6g", res.Metrics[k]))
		}
	}

	if n := len(res.History); n > 0 {
		s.WriteString("\n" + Bodies(res.History[n-1].Entities))
	}
	return Panel.Render(s.String())
}

// Bodies lists location and velocity of each entity, one per line.
func Bodies(entities []*physics.Entity) string {
	var s strings.Builder
	for i, e := range entities {
		st := e.State()
		id := colored(CurrentTheme.BodyColor(i)).Render(fmt.Sprintf("%-8s", e.ID()))
		fmt.Fprintf(&s, "%s x=%s v=%s\n", id, formatVec(st.Location[:]), formatVec(st.Velocity[:]))
	}
	return s.String()
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf("%.4g", dynamo.RoundDigits(c, 6))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TrajectoryPlot charts the x coordinate of every body against time.
func TrajectoryPlot(history []sim.Snapshot, width, height int) string {
	if len(history) < 2 || len(history[0].Entities) == 0 {
		return ""
	}
	bodies := history[0].Entities
	series := make([][]float64, len(bodies))
	legends := make([]string, len(bodies))
	colors := make([]asciigraph.AnsiColor, len(bodies))
	for i, e := range bodies {
		legends[i] = e.ID()
		colors[i] = seriesColors[i%len(seriesColors)]
		series[i] = make([]float64, 0, len(history))
	}
	for _, snap := range history {
		for i, e := range snap.Entities {
			if i < len(series) {
				series[i] = append(series[i], e.State().Location.X())
			}
		}
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("x location (m) over time"),
	)
}

// EnergyPlot charts the total energy of the world against time.
func EnergyPlot(history []sim.Snapshot, width, height int) string {
	if len(history) < 2 {
		return ""
	}
	return asciigraph.Plot(EnergySeries(history),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("total energy (J)"),
	)
}

func EnergySeries(history []sim.Snapshot) []float64 {
	out := make([]float64, len(history))
	for i, snap := range history {
		out[i] = physics.TotalEnergy(snap.Entities)
	}
	return out
}
