package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"watchtiles/internal/tileview"
)

type bodyKey struct {
	id    string
	width int
}

// renderViewport paints the visible pages into a cols by rows block.
func (r *Root) renderViewport(cols, rows int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(" ", cols)
	}
	if r.engine == nil {
		return strings.Join(lines, "\n")
	}
	w, h := r.engine.Size()
	for _, pl := range r.engine.Visible() {
		page := strings.Split(r.renderPage(pl.Page, w, h), "\n")
		for i, src := range page {
			row := pl.At.Y + i
			if row < 0 || row >= rows {
				continue
			}
			lines[row] = paintRow(lines[row], src, pl.At.X, cols)
		}
	}
	return strings.Join(lines, "\n")
}

// paintRow draws src over dst starting at column x, clipped to cols. Both
// may carry ANSI styling.
func paintRow(dst, src string, x, cols int) string {
	srcW := ansi.StringWidth(src)
	start := max(0, x)
	end := min(cols, x+srcW)
	if start >= end {
		return dst
	}
	seg := ansi.Cut(src, start-x, end-x)
	return ansi.Cut(dst, 0, start) + seg + ansi.Cut(dst, end, cols)
}

func (r *Root) renderPage(p *tileview.Page, width, height int) string {
	card, _ := p.Content().(Card)
	title := card.Title
	if title == "" {
		title = fmt.Sprintf("page %d", p.ID())
	}
	if p.IsHub() {
		title = r.theme.HubMark.Render(r.hubGlyph()) + " " + r.theme.PageTitle.Render(title)
	} else {
		title = r.theme.PageTitle.Render(title)
	}
	border := r.theme.PageBorder
	if card.Accent != "" {
		border = border.Foreground(lipgloss.Color(card.Accent))
	}
	body := r.cardBody(card, max(1, width-4))
	return r.drawPanel(title, body, width, height, border)
}

func (r *Root) hubGlyph() string {
	if r.ascii {
		return "*"
	}
	return "◆"
}

// cardBody renders the card markdown for an inner width, cached per card.
func (r *Root) cardBody(card Card, width int) []string {
	k := bodyKey{id: card.ID, width: width}
	if lines, ok := r.bodyCache[k]; ok {
		return lines
	}
	text := strings.TrimSpace(card.BodyMD)
	rendered := ""
	if renderer := r.markdownFor(width); renderer != nil && text != "" {
		if out, err := renderer.Render(text); err == nil {
			rendered = out
		} else {
			r.logger.Debug("ui.markdown_failed", "card", card.ID, "err", err)
		}
	}
	if rendered == "" {
		rendered = text
	}
	lines := strings.Split(strings.Trim(rendered, "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[0])) == "" {
		lines = lines[1:]
	}
	r.bodyCache[k] = lines
	return lines
}

func (r *Root) markdownFor(width int) *glamour.TermRenderer {
	if r.plainBodies {
		return nil
	}
	if renderer, ok := r.markdown[width]; ok {
		return renderer
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.logger.Warn("ui.markdown_renderer", "err", err)
		renderer = nil
	}
	r.markdown[width] = renderer
	return renderer
}

func (r *Root) markdownStyle() string {
	if r.styleVariant == "paper" {
		return "light"
	}
	return "dark"
}

func (r *Root) drawPanel(title string, lines []string, width, height int, border lipgloss.Style) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "╭"
	tr := "╮"
	bl := "╰"
	br := "╯"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := border.Render(tl + strings.Repeat(h, innerW) + tr)
	if title != "" && innerW > 4 {
		label := ansi.Truncate(" "+title+" ", innerW-2, "")
		rest := innerW - 1 - ansi.StringWidth(label)
		top = border.Render(tl+h) + label + border.Render(strings.Repeat(h, rest)+tr)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		out = append(out, border.Render(v)+r.theme.PageBody.Render(fitWidth(line, innerW))+border.Render(v))
	}
	out = append(out, border.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

// fitWidth truncates or pads s to exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(strings.ReplaceAll(s, "\t", "    "), width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
