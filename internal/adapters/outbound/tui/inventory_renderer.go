package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/rackmap/internal/domain"
)

// RenderFloors lists floors with their column counts.
func RenderFloors(floors []domain.Floor) string {
	if len(floors) == 0 {
		return "\n  " + dimStyle.Render("No floors yet. Run `rackmap setup` first.") + "\n\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Floors") + "  " + dimStyle.Render(fmt.Sprintf("%d total", len(floors))) + "\n\n")
	fmt.Fprintf(&b, "    %s %s %s\n",
		dimStyle.Render(padRight("FLOOR", 8)),
		dimStyle.Render(padRight("LEFT", 8)),
		dimStyle.Render("RIGHT"))
	for _, f := range floors {
		fmt.Fprintf(&b, "    %s %s %s\n",
			modelStyle.Render(padRight(fmt.Sprintf("%d", f.Number), 8)),
			padRight(fmt.Sprintf("%d", f.LeftColumns), 8),
			fmt.Sprintf("%d", f.RightColumns))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderProducts lists products under a title, one per line.
func RenderProducts(title string, products []domain.Product) string {
	if len(products) == 0 {
		return "\n  " + dimStyle.Render("No products found.") + "\n\n"
	}

	units := 0
	for _, p := range products {
		units += p.Quantity
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(title) + "  " +
		dimStyle.Render(fmt.Sprintf("%d products  ·  %d units", len(products), units)) + "\n\n")
	fmt.Fprintf(&b, "    %s %s %s %s %s\n",
		dimStyle.Render(padRight("ID", 6)),
		dimStyle.Render(padRight("MODEL", 9)),
		dimStyle.Render(padRight("QTY", 7)),
		dimStyle.Render(padRight("FLOOR", 6)),
		dimStyle.Render("POSITION"))
	for _, p := range products {
		fmt.Fprintf(&b, "    %s %s %s %s %s\n",
			infoStyle.Render(padRight(fmt.Sprintf("%d", p.ID), 6)),
			modelStyle.Render(padRight(p.Model, 9)),
			padRight(fmt.Sprintf("%d", p.Quantity), 7),
			padRight(fmt.Sprintf("%d", p.FloorNumber), 6),
			p.Position)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSlot shows what is stored at one position of a floor.
func RenderSlot(floorNumber int, slot domain.Slot) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("Floor %d  ·  %s", floorNumber, slot.Position)) + "\n\n")
	if slot.Empty() {
		b.WriteString("    " + faintStyle.Render("empty") + "\n\n")
		return b.String()
	}
	for _, p := range slot.Products {
		fmt.Fprintf(&b, "    %s %s  %s\n",
			passStyle.Render("●"),
			modelStyle.Render(padRight(p.Model, 8)),
			dimStyle.Render(fmt.Sprintf("×%d  (id %d)", p.Quantity, p.ID)))
	}
	b.WriteString("\n    " + dimStyle.Render(fmt.Sprintf("%d units", slot.Units())) + "\n\n")
	return b.String()
}
