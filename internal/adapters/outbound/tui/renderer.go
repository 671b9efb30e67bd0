package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/rackmap/internal/domain"
)

// ── Warm warehouse palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	infoStyle     = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	modelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderStatus shows the lifecycle state and totals of the warehouse.
func RenderStatus(st domain.Status) string {
	var b strings.Builder

	title := headerStyle.Render("rackmap")
	state := failStyle.Render("not set up")
	if st.Initialized() {
		state = passStyle.Render("ready")
	}
	stats := dimStyle.Render(fmt.Sprintf(
		"%d floors  ·  %d products  ·  %d units", st.Floors, st.Products, st.Units))

	b.WriteString(boxStyle.Render(title + "\n" + state + "\n\n" + stats))
	b.WriteString("\n")

	if !st.Initialized() {
		b.WriteString("\n  " + dimStyle.Render("Run `rackmap setup` to create floors.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderError formats a failed operation for the terminal.
func RenderError(err error) string {
	if rej, ok := domain.AsRejection(err); ok {
		return "  " + warnStyle.Render("rejected") + " " + dimStyle.Render(string(rej.Rule)) + "  " + rej.Message + "\n"
	}
	return "  " + failStyle.Render("error") + "  " + err.Error() + "\n"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
