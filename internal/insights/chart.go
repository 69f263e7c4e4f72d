package insights

import (
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderPie writes the slices as a PNG pie chart. Empty slices are skipped.
func RenderPie(w io.Writer, title string, slices []Slice, width, height int) error {
	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.2f", s.Label, s.Value),
			Value: s.Value,
			Style: chart.Style{
				FillColor:   sliceColor(s.Color, i),
				StrokeColor: chart.ColorWhite,
			},
		})
	}
	if len(values) == 0 {
		return internal.ErrNothingToChart
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  width,
		Height: height,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

func sliceColor(hex string, index int) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 && len(hex) != 3 {
		return chart.GetDefaultColor(index)
	}
	return drawing.ColorFromHex(hex)
}

// ChartTitle names the month a snapshot covers.
func ChartTitle(snap Snapshot) string {
	return fmt.Sprintf("Spending %s %d", snap.Month, snap.Year)
}
