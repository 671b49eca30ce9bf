package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func overlayCentered(base, overlay string, width, height int) string {
	base = stripANSI(base)

	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = len(baseLines)
		if height < 1 {
			height = 1
		}
	}

	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	if len(baseLines) > height {
		baseLines = baseLines[:height]
	}
	for i := range baseLines {
		r := []rune(baseLines[i])
		if len(r) < width {
			baseLines[i] = baseLines[i] + strings.Repeat(" ", width-len(r))
		} else if len(r) > width {
			baseLines[i] = string(r[:width])
		}
	}

	overH := len(overLines)
	overW := 0
	for _, l := range overLines {
		if w := lipgloss.Width(stripANSI(l)); w > overW {
			overW = w
		}
	}
	startY := (height - overH) / 2
	if startY < 0 {
		startY = 0
	}
	startX := (width - overW) / 2
	if startX < 0 {
		startX = 0
	}
	for y := 0; y < overH && startY+y < len(baseLines); y++ {
		baseRunes := []rune(baseLines[startY+y])
		for len(baseRunes) < startX+overW {
			baseRunes = append(baseRunes, ' ')
		}
		lineWidth := lipgloss.Width(stripANSI(overLines[y]))
		if lineWidth < 0 {
			lineWidth = 0
		}
		if startX+lineWidth > len(baseRunes) {
			lineWidth = len(baseRunes) - startX
		}
		prefix := string(baseRunes[:startX])
		suffix := ""
		if startX+lineWidth < len(baseRunes) {
			suffix = string(baseRunes[startX+lineWidth:])
		}
		baseLines[startY+y] = prefix + overLines[y] + suffix
	}
	return strings.Join(baseLines, "\n")
}

func applyBackdrop(base string, width, height int) string {
	lines := strings.Split(stripANSI(base), "\n")
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = len(lines)
		if height < 1 {
			height = 1
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		r := []rune(lines[i])
		if len(r) < width {
			r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
		} else if len(r) > width {
			r = r[:width]
		}
		for j := range r {
			r[j] = softenRune(r[j])
		}
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func softenRune(r rune) rune {
	switch r {
	case '│', '┃':
		return '┆'
	case '─', '━':
		return '┄'
	case '┬', '┴', '┼':
		return '┼'
	case '├':
		return '┝'
	case '┤':
		return '┥'
	case '┌':
		return '┍'
	case '┐':
		return '┑'
	case '└':
		return '┕'
	case '┘':
		return '┙'
	default:
		return r
	}
}

func innerHeight(totalHeight int) int {
	h := totalHeight - 2
	if h < 1 {
		return 1
	}
	return h
}

func fitLines(lines []string, maxLines int) []string {
	if maxLines <= 0 {
		return []string{}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	if len(lines) > maxLines {
		if maxLines == 1 {
			return []string{truncate(lines[0], 20)}
		}
		out := append([]string(nil), lines[:maxLines-1]...)
		out = append(out, "~")
		return out
	}
	out := append([]string(nil), lines...)
	for len(out) < maxLines {
		out = append(out, "")
	}
	return out
}

func clampLine(s string, maxWidth int) string {
	if maxWidth <= 1 {
		return truncate(s, 1)
	}
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	return truncate(s, maxWidth)
}

func panelInnerWidth(totalWidth int) int {
	w := totalWidth - 4
	if w < 1 {
		return 1
	}
	return w
}

func fitAndWrapLines(lines []string, maxLines, maxWidth int) []string {
	wrapped := wrapLines(lines, maxWidth)
	return fitLines(wrapped, maxLines)
}

func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return []string{}
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{""}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	out := make([]string, 0, 4)
	current := ""
	for _, w := range words {
		for len([]rune(w)) > width {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			r := []rune(w)
			out = append(out, string(r[:width]))
			w = string(r[width:])
		}
		if current == "" {
			current = w
			continue
		}
		candidate := current + " " + w
		if len([]rune(candidate)) <= width {
			current = candidate
			continue
		}
		out = append(out, current)
		current = w
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
