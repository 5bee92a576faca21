package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"ecommerce-dashboard/internal/model"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNoData means the panel has nothing to draw for the current range.
	ErrNoData = errors.New("no data to render")
	// ErrNotChartable is returned for metric tiles, which have no chart.
	ErrNotChartable = errors.New("panel is not a chart")
)

const (
	chartWidth  = 1024
	chartHeight = 512
	barWidth    = 40
	barSpacing  = 20
	maxLabelLen = 12
)

var lineColor = drawing.ColorFromHex("4c72b0")

// Panel writes a PNG rendering of p to w.
func Panel(w io.Writer, p model.Panel) error {
	if !p.Available {
		return fmt.Errorf("%w: %s", ErrNoData, p.Error)
	}
	if p.Kind == model.KindMetric {
		return ErrNotChartable
	}

	switch data := p.Data.(type) {
	case []model.DailyPoint:
		return dailyLine(w, p.Title, data)
	case []model.LabelValue:
		if p.Kind == model.KindPie {
			return pie(w, p.Title, data)
		}
		return bars(w, p.Title, labelValueBars(data))
	case []model.LateDelivery:
		values := make([]chart.Value, 0, len(data))
		for _, d := range data {
			values = append(values, chart.Value{Label: d.PaymentType, Value: d.Percent})
		}
		return bars(w, p.Title, values)
	case model.Histogram:
		return histogram(w, p.Title, data)
	default:
		return fmt.Errorf("%w: unsupported data %T", ErrNotChartable, p.Data)
	}
}

func dailyLine(w io.Writer, title string, points []model.DailyPoint) error {
	if len(points) == 0 {
		return ErrNoData
	}
	xs := make([]time.Time, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.Day)
		ys = append(ys, float64(p.Orders))
	}
	// Pad to at least two X values for go-chart
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, 0)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: "Date", ValueFormatter: chart.TimeDateValueFormatter},
		YAxis: chart.YAxis{Name: "Order Count", Range: yRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    3,
				},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func pie(w io.Writer, title string, data []model.LabelValue) error {
	values := make([]chart.Value, 0, len(data))
	for _, d := range data {
		if d.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: fmt.Sprintf("%s %.1f%%", shorten(d.Label), d.Value), Value: d.Value})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

func labelValueBars(data []model.LabelValue) []chart.Value {
	values := make([]chart.Value, 0, len(data))
	for _, d := range data {
		values = append(values, chart.Value{Label: shorten(d.Label), Value: d.Value})
	}
	return values
}

func histogram(w io.Writer, title string, h model.Histogram) error {
	values := make([]chart.Value, 0, len(h.Bins))
	for _, b := range h.Bins {
		values = append(values, chart.Value{Label: fmt.Sprintf("%.0f", b.Lower), Value: float64(b.Count)})
	}
	return bars(w, title, values)
}

func bars(w io.Writer, title string, values []chart.Value) error {
	if len(values) == 0 {
		return ErrNoData
	}
	ys := make([]float64, len(values))
	for i, v := range values {
		ys[i] = v.Value
	}

	width := len(values)*(barWidth+barSpacing) + 200
	if width < chartWidth {
		width = chartWidth
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		YAxis: chart.YAxis{Range: yRange(ys)},
		Bars:  values,
	}
	return graph.Render(chart.PNG, w)
}

// yRange starts at zero and leaves headroom above the largest value
func yRange(ys []float64) *chart.ContinuousRange {
	max := 0.0
	for _, y := range ys {
		max = math.Max(max, y)
	}
	if max == 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.1}
}

// shorten cuts long labels on rune boundaries
func shorten(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelLen {
		return label
	}
	return string(runes[:maxLabelLen-3]) + "..."
}
