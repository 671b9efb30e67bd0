package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/rackmap/internal/domain"
)

const cellWidth = 9

// RenderFloorMap draws both areas of a floor as a grid of slots, one
// column per rack column and one line per row.
func RenderFloorMap(m domain.FloorMap) string {
	var b strings.Builder

	// ── Header box ──
	title := headerStyle.Render(fmt.Sprintf("Floor %d", m.Floor.Number))
	stats := dimStyle.Render(fmt.Sprintf("%d left  ·  %d right  ·  %d rows  ·  %d occupied  ·  %d units",
		m.Floor.LeftColumns, m.Floor.RightColumns, m.Rows, m.OccupiedSlots(), m.Units()))
	b.WriteString(boxStyle.Render(title + "\n\n" + stats))
	b.WriteString("\n\n")

	renderArea(&b, "Left area", m.Left, m.Rows)
	b.WriteString("\n")
	renderArea(&b, "Right area", m.Right, m.Rows)

	if len(m.Unplaced) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%d product(s) outside the grid", len(m.Unplaced))) + "\n")
		for _, p := range m.Unplaced {
			fmt.Fprintf(&b, "    %s %s  %s\n",
				modelStyle.Render(padRight(p.Model, 8)),
				dimStyle.Render(padRight(p.Position, 8)),
				dimStyle.Render(fmt.Sprintf("×%d", p.Quantity)))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderArea(b *strings.Builder, title string, columns []domain.MapColumn, rows int) {
	b.WriteString("  " + titleStyle.Render(title) + "\n")

	// Column labels
	b.WriteString("    " + padRight("", 4))
	for _, c := range columns {
		label := fmt.Sprintf("%s%d", c.Side, c.Number)
		b.WriteString(dimStyle.Render(padRight(label, cellWidth)))
	}
	b.WriteString("\n")

	for row := 0; row < rows; row++ {
		b.WriteString("    " + dimStyle.Render(padRight(fmt.Sprintf("%d", row+1), 4)))
		for _, c := range columns {
			b.WriteString(renderCell(c.Slots[row]))
		}
		b.WriteString("\n")
	}
}

func renderCell(s domain.Slot) string {
	if s.Empty() {
		return faintStyle.Render(padRight("·", cellWidth))
	}
	text := s.Products[0].Model
	if extra := len(s.Products) - 1; extra > 0 {
		suffix := fmt.Sprintf("+%d", extra)
		text = truncate(text, cellWidth-1-len(suffix)) + suffix
	}
	return passStyle.Render(padRight(truncate(text, cellWidth-1), cellWidth))
}
