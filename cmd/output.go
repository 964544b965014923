package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	metricStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFAF")).Padding(0, 1)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAF5F"))
)

// metricTable renders a two-column Metric/Value table under a title
func metricTable(w io.Writer, title string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return metricStyle
			default:
				return valueStyle
			}
		})

	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, t.Render())
}

// bulletList prints a heading followed by one bullet per item
func bulletList(w io.Writer, heading string, style lipgloss.Style, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.Render(heading))
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}
