// Package charts renders the presentation view-models to PNG images.
package charts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"financas/internal/format"
	"financas/internal/log"
	"financas/internal/present"
)

// Renderer draws PNG charts from view-models. All methods return nil bytes
// without error when there is nothing to draw.
type Renderer struct {
	logger *log.Logger
}

func NewRenderer(logger *log.Logger) *Renderer {
	return &Renderer{logger: logger.WithComponent(log.ComponentCharts)}
}

// CategoryDonut renders the category distribution with the slice labels
// already computed by the presenter.
func (r *Renderer) CategoryDonut(title string, slices []present.PieSlice) ([]byte, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		label := s.Label
		if label == "" {
			label = s.Name
		}
		values = append(values, chart.Value{
			Label: label,
			Value: s.Value,
			Style: chart.Style{
				FillColor: colorFromHex(s.Color),
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category donut: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyBalance renders the net balance per month, one bar per point,
// green for surplus and red for deficit months.
func (r *Renderer) MonthlyBalance(points []present.MonthlyPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		color := colorFromHex(present.ColorReceita)
		if p.Net < 0 {
			color = colorFromHex(present.ColorDespesa)
		}
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Net,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	graph := chart.BarChart{
		Title:      "Saldo mensal",
		TitleStyle: chart.Style{FontSize: 14, FontColor: chart.ColorBlack},
		Width:      1200,
		Height:     600,
		BarWidth:   60,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: currencyFormatter,
			Style:          chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render monthly balance: %w", err)
	}
	return buf.Bytes(), nil
}

// CategoryProjections renders the projected spend per category.
func (r *Renderer) CategoryProjections(categoryBars []present.Bar) ([]byte, error) {
	if len(categoryBars) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(categoryBars))
	for _, b := range categoryBars {
		color := colorFromHex(b.Color)
		bars = append(bars, chart.Value{
			Label: b.Name,
			Value: b.Value,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	graph := chart.BarChart{
		Title:      "Projeção por categoria",
		TitleStyle: chart.Style{FontSize: 14, FontColor: chart.ColorBlack},
		Width:      1200,
		Height:     600,
		BarWidth:   60,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: currencyFormatter,
			Style:          chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category projections: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG stores a rendered chart under dir and returns the full path.
// A nil png is a no-op.
func (r *Renderer) WritePNG(dir, name string, png []byte) (string, error) {
	if len(png) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	r.logger.Debug("chart written", log.FieldOperation, log.OpRender, log.FieldChartPath, path)
	return path, nil
}

func currencyFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return format.Currency(f)
}

func colorFromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
