package render

import (
	"fmt"
	"io"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PlotTrajectory renders an HTML page with one line per state showing its
// value at every iteration.
func PlotTrajectory(w io.Writer, title string, m *mdp.MDP, t mdp.Trajectory) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	var steps []string
	for i := 0; i <= t.Iterations(); i++ {
		steps = append(steps, fmt.Sprintf("%d", i))
	}

	line = line.SetXAxis(steps)
	for _, s := range m.States() {
		items := make([]opts.LineData, 0, len(t.Values))
		for _, v := range t.StateValues(s) {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(string(s), items)
	}

	page := components.NewPage()
	page.AddCharts(
		line,
	)
	return page.Render(w)
}
