package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-birthday-wish/internal/config"
	"github.com/tartampluch/go-birthday-wish/internal/engine"
)

var shapeGlyphs = map[engine.Shape]string{
	engine.ShapeRect:   "■",
	engine.ShapeCircle: "●",
	engine.ShapeStrip:  "▬",
}

// fieldRows is the number of terminal rows above the card left for confetti.
func (m Model) fieldRows() int {
	snap := m.session.Snapshot()
	used := lipgloss.Height(m.cardView(snap)) + lipgloss.Height(m.msg(config.TKeyTUIHelp))
	return max(0, m.height-used)
}

// fieldSize converts the confetti field to simulation pixels.
func (m Model) fieldSize() (float32, float32) {
	return float32(m.width * config.TUICellWidth), float32(m.fieldRows() * config.TUICellHeight)
}

// confettiView draws the live particles on a rows-high grid. It returns ""
// when there is nothing to draw.
func (m Model) confettiView(rows int) string {
	if m.burst == nil || m.burst.Done() || rows <= 0 || m.width <= 0 {
		return ""
	}

	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, m.width)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	styles := make(map[string]lipgloss.Style)
	for _, p := range m.burst.Particles() {
		c := int(p.X / config.TUICellWidth)
		r := int(p.Y / config.TUICellHeight)
		if p.X < 0 || p.Y < 0 || r >= rows || c >= m.width {
			continue
		}
		style, ok := styles[p.Color]
		if !ok {
			style = itemStyle(p.Color)
			styles[p.Color] = style
		}
		grid[r][c] = style.Render(shapeGlyphs[p.Shape])
	}

	lines := make([]string, rows)
	for r, cells := range grid {
		lines[r] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}
