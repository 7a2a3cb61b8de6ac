package forecast

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"StockSeer/internal/model"
)

var (
	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Format renders the forecast for terminal output: predicted close and
// signed move to two decimals, colored by direction.
func Format(f model.Forecast, testMSE float64) string {
	style := upStyle
	direction := "up"
	if f.PredictedClose < f.LastClose {
		style = downStyle
		direction = "down"
	}

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("Predicted close for %s: %.2f",
		f.TargetDate.Format("2006-01-02"), f.PredictedClose)))
	b.WriteString("\n")
	b.WriteString(style.Render(fmt.Sprintf("Expected to move %s %s from last close %.2f",
		direction, FormatPctChange(f.PctChange), f.LastClose)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Test MSE: %.4f", testMSE))
	return b.String()
}

// FormatPctChange renders a signed percentage move to two decimals.
func FormatPctChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}
