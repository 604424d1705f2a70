package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/valley/pkg/harness"
)

const (
	chartWidth  = "100%"
	chartHeight = "420px"
	lineWidth   = 2

	colorExpected = "#5470c6"
	colorGot      = "#ee6666"
)

// WriteChart renders one line chart per outcome, plotting expected and
// produced results by result index, as a single HTML page.
func WriteChart(w io.Writer, outcomes []*harness.Outcome) error {
	page := components.NewPage()
	page.PageTitle = "valley results"

	for _, o := range outcomes {
		page.AddCharts(buildChart(o))
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}

func buildChart(o *harness.Outcome) *charts.Line {
	n := max(len(o.Case.Expected), len(o.Steps))
	labels := make([]string, n)

	for i := range n {
		labels[i] = strconv.Itoa(i)
	}

	subtitle := "pass"
	if !o.Passed() {
		subtitle = fmt.Sprintf("fail: %d mismatches", len(o.Mismatches))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: o.Name, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Result"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Expected", lineData(o.Case.Expected),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorExpected}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("Got", lineData(o.Results()),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorGot}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth, Type: "dashed"}),
	)

	return line
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			data[i] = opts.LineData{Value: "-"}

			continue
		}

		data[i] = opts.LineData{Value: v}
	}

	return data
}
