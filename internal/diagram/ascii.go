package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gosfr/internal/hexlat"
)

// DrawLatticeRings creates a ring table of a lattice layout given
// outermost ring first, naming each fill with name.
func DrawLatticeRings[T any](layout [][]T, name func(T) string) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  RING LAYOUT (outermost first)\n")
	sb.WriteString("  ─────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  %-6s %-10s %s\n", "Ring", "Positions", "Fill"))

	total := 0
	for i, ring := range layout {
		r := len(layout) - 1 - i
		var fills []string
		seen := map[string]bool{}
		for _, u := range ring {
			n := name(u)
			if !seen[n] {
				seen[n] = true
				fills = append(fills, n)
			}
		}
		total += len(ring)
		sb.WriteString(fmt.Sprintf("  %-6d %-10d %s\n", r, len(ring), strings.Join(fills, ", ")))
	}
	sb.WriteString("  ─────────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  %-6s %-10d\n", "Total", total))

	return sb.String()
}

// DrawLatticeMap draws a lattice in pictorial row order, one symbol per
// position, followed by the symbol legend. Symbols are assigned in order of
// first appearance.
func DrawLatticeMap[T any](layout [][]T, o hexlat.Orientation, name func(T) string) (string, error) {
	rows, err := hexlat.Rows(layout, o)
	if err != nil {
		return "", err
	}

	const symbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	sym := map[string]byte{}
	var order []string
	symbolOf := func(n string) byte {
		if s, ok := sym[n]; ok {
			return s
		}
		s := byte('?')
		if len(order) < len(symbols) {
			s = symbols[len(order)]
		}
		sym[n] = s
		order = append(order, n)
		return s
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString("  ")
		sb.WriteString(strings.Repeat(" ", width-len(row)))
		for i, u := range row {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteByte(symbolOf(name(u)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	for _, n := range order {
		sb.WriteString(fmt.Sprintf("  %c = %s\n", sym[n], n))
	}
	return sb.String(), nil
}

// DrawFluxProfile creates a terminal line chart of a flux profile.
func DrawFluxProfile(profile []float64, caption string) string {
	if len(profile) == 0 {
		return ""
	}
	return asciigraph.Plot(profile,
		asciigraph.Height(12),
		asciigraph.Width(min(len(profile)*2, 72)),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
