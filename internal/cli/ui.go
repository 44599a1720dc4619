package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail   = lipgloss.NewStyle().Foreground(colorRed)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

// printTable writes a rounded lipgloss table. Numeric columns are right
// aligned.
func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(rows) && col < len(rows[row]) {
				if _, err := strconv.ParseFloat(rows[row][col], 64); err == nil {
					return base.Foreground(colorCyan).Align(lipgloss.Right)
				}
			}
			return base
		})
	fmt.Fprintln(w, t.Render())
}

// printKeyValues writes aligned label/value pairs.
func printKeyValues(w io.Writer, kv [][2]string) {
	key := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	for _, p := range kv {
		fmt.Fprintln(w, key.Render(p[0])+" "+styleNumber.Render(p[1]))
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
