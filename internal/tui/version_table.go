package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nvm-manager/internal/nvm"
	"nvm-manager/internal/versions"
)

type tableKind int

const (
	kindAvailable tableKind = iota
	kindInstalled
)

type columnSpec struct {
	title  string
	min    int
	max    int
	weight int
	center bool
	color  func(UITheme, versionRow) string
}

// versionRow is one line of either list. Installed rows leave the catalog
// fields empty.
type versionRow struct {
	Version   string
	Npm       string
	LTS       string
	Date      string
	Installed bool
	Current   bool
}

func availableRows(list []nvm.AvailableVersion) []versionRow {
	rows := make([]versionRow, 0, len(list))
	for _, v := range list {
		rows = append(rows, versionRow{
			Version:   v.Version,
			Npm:       v.NpmVersion,
			LTS:       v.LTS,
			Date:      v.Date,
			Installed: v.Status == nvm.StatusInstalled,
		})
	}
	return rows
}

func installedRows(list []nvm.InstalledVersion) []versionRow {
	rows := make([]versionRow, 0, len(list))
	for _, v := range list {
		rows = append(rows, versionRow{Version: v.Version, Installed: true, Current: v.IsCurrent})
	}
	return rows
}

type versionTable struct {
	kind     tableKind
	rows     []versionRow
	filtered []int
	cursor   int
	scroll   int
	filter   string
	height   int
}

func newVersionTable(kind tableKind, rows []versionRow) versionTable {
	t := versionTable{kind: kind, height: 32}
	t.replaceRows(rows)
	return t
}

// replaceRows keeps the cursor on the same version when it survives the reload.
func (t *versionTable) replaceRows(rows []versionRow) {
	prev, hadPrev := t.currentRow()
	t.rows = append([]versionRow(nil), rows...)
	versions.SortDescending(t.rows, func(r versionRow) string { return r.Version })
	t.recompute()
	if !hadPrev {
		return
	}
	for i, idx := range t.filtered {
		if versions.Normalize(t.rows[idx].Version) == versions.Normalize(prev.Version) {
			t.cursor = i
			t.ensureVisible()
			return
		}
	}
}

func (t *versionTable) setHeight(h int) {
	t.height = h
	t.ensureVisible()
}

func (t *versionTable) moveCursor(delta int) {
	if len(t.filtered) == 0 {
		return
	}
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor > len(t.filtered)-1 {
		t.cursor = len(t.filtered) - 1
	}
	t.ensureVisible()
}

func (t *versionTable) pageMove(delta int) {
	t.moveCursor(delta * t.tableBodyRows())
}

func (t *versionTable) backspaceFilter() {
	if len(t.filter) == 0 {
		return
	}
	t.filter = t.filter[:len(t.filter)-1]
	t.recompute()
}

func (t *versionTable) appendFilterChar(ch string) {
	if len(ch) != 1 {
		return
	}
	if ch[0] < 32 || ch[0] > 126 {
		return
	}
	t.filter += ch
	t.recompute()
}

func (t *versionTable) clearFilter() {
	t.filter = ""
	t.recompute()
}

func (t *versionTable) currentRow() (versionRow, bool) {
	if len(t.filtered) == 0 || t.cursor < 0 || t.cursor >= len(t.filtered) {
		return versionRow{}, false
	}
	return t.rows[t.filtered[t.cursor]], true
}

func (t *versionTable) currentVersion() string {
	for _, r := range t.rows {
		if r.Current {
			return r.Version
		}
	}
	return ""
}

func (t *versionTable) recompute() {
	indexes := make([]int, 0, len(t.rows))
	needle := strings.ToLower(strings.TrimSpace(t.filter))
	for i, r := range t.rows {
		hay := strings.ToLower(strings.Join([]string{r.Version, r.Npm, r.LTS, r.Date, statusLabel(r)}, " "))
		if needle == "" || strings.Contains(hay, needle) {
			indexes = append(indexes, i)
		}
	}
	t.filtered = indexes
	if t.cursor >= len(t.filtered) {
		t.cursor = len(t.filtered) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureVisible()
}

func (t *versionTable) ensureVisible() {
	if len(t.filtered) == 0 {
		t.cursor = 0
		t.scroll = 0
		return
	}
	rows := t.tableBodyRows()
	if t.cursor < t.scroll {
		t.scroll = t.cursor
	}
	if t.cursor >= t.scroll+rows {
		t.scroll = t.cursor - rows + 1
	}
	maxScroll := len(t.filtered) - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.scroll > maxScroll {
		t.scroll = maxScroll
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

func (t versionTable) tableBodyRows() int {
	height := t.height
	if height <= 0 {
		height = 30
	}
	// top border, header row, header separator, bottom border
	rows := height - 4
	if rows < 4 {
		rows = 4
	}
	return rows
}

// npmKnown reports whether any row carries an npm version. The npm column is
// hidden otherwise, which is the case for the ls-remote fallback.
func (t versionTable) npmKnown() bool {
	for _, r := range t.rows {
		if r.Npm != "" && r.Npm != nvm.UnknownNpm {
			return true
		}
	}
	return false
}

func (t versionTable) columns() []columnSpec {
	version := columnSpec{title: "Version", min: 9, max: 14, weight: 2, color: func(th UITheme, _ versionRow) string { return th.ColVersion }}
	status := columnSpec{title: "Status", min: 14, max: 26, weight: 3, color: statusColor}
	if t.kind == kindInstalled {
		badge := columnSpec{title: "", min: 1, max: 1, center: true, color: func(th UITheme, _ versionRow) string { return th.CurrentBadge }}
		return []columnSpec{badge, version, status}
	}
	cols := []columnSpec{version}
	if t.npmKnown() {
		cols = append(cols, columnSpec{title: "npm", min: 7, max: 10, weight: 1, color: func(th UITheme, _ versionRow) string { return th.ColNpm }})
	}
	cols = append(cols,
		columnSpec{title: "LTS", min: 4, max: 12, weight: 1, color: func(th UITheme, _ versionRow) string { return th.ColLTS }},
		columnSpec{title: "Date", min: 10, max: 10, color: func(th UITheme, _ versionRow) string { return th.ColDate }},
		status,
	)
	return cols
}

func statusColor(th UITheme, r versionRow) string {
	if r.Installed {
		return th.StatusInstalled
	}
	return th.StatusNotInstalled
}

func statusLabel(r versionRow) string {
	switch {
	case r.Current:
		return "Current"
	case r.Installed:
		return string(nvm.StatusInstalled)
	default:
		return string(nvm.StatusNotInstalled)
	}
}

func (t versionTable) cells(r versionRow, busy string) []string {
	status := statusLabel(r)
	if busy != "" {
		status = busy
	}
	if t.kind == kindInstalled {
		badge := ""
		if r.Current {
			badge = "*"
		}
		return []string{badge, r.Version, status}
	}
	out := []string{r.Version}
	if t.npmKnown() {
		out = append(out, r.Npm)
	}
	return append(out, r.LTS, r.Date, status)
}

// renderTableWithTheme draws the visible window. busyLabel returns the
// spinner text for a row whose version has an operation in flight.
func (t versionTable) renderTableWithTheme(totalWidth int, theme UITheme, busyLabel func(version string) string) string {
	cols := t.columns()
	widths := allocateColumnWidths(totalWidth-2, cols)
	rowLimit := t.tableBodyRows()
	start := t.scroll
	end := start + rowLimit
	if end > len(t.filtered) {
		end = len(t.filtered)
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}

	lines := make([]string, 0, rowLimit+4)
	lines = append(lines, drawBorder("┌", "┬", "┐", widths))
	lines = append(lines, drawRow(titles, cols, widths, versionRow{}, false, theme, true))
	lines = append(lines, drawBorder("├", "┼", "┤", widths))
	for i := start; i < end; i++ {
		row := t.rows[t.filtered[i]]
		busy := ""
		if busyLabel != nil {
			busy = busyLabel(row.Version)
		}
		lines = append(lines, drawRow(t.cells(row, busy), cols, widths, row, i == t.cursor, theme, false))
	}
	for i := end; i < start+rowLimit; i++ {
		lines = append(lines, drawRow(nil, cols, widths, versionRow{}, false, theme, false))
	}
	lines = append(lines, drawBorder("└", "┴", "┘", widths))
	return strings.Join(lines, "\n")
}

func drawBorder(left, mid, right string, widths []int) string {
	parts := make([]string, 0, len(widths)+2)
	parts = append(parts, left)
	for i, w := range widths {
		parts = append(parts, strings.Repeat("─", w))
		if i != len(widths)-1 {
			parts = append(parts, mid)
		}
	}
	parts = append(parts, right)
	return strings.Join(parts, "")
}

func drawRow(values []string, cols []columnSpec, widths []int, row versionRow, selected bool, theme UITheme, isHeader bool) string {
	parts := make([]string, 0, len(widths)+2)
	parts = append(parts, "│")
	for i := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cellText := truncate(v, widths[i])
		cell := pad(cellText, widths[i])
		if cols[i].center {
			cell = center(cellText, widths[i])
		}
		cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cols[i].color(theme, row)))
		if isHeader {
			cellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TableHeader)).Bold(true)
		}
		if selected {
			cellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SelectionFg)).
				Background(lipgloss.Color(theme.SelectionBg))
		}
		parts = append(parts, cellStyle.Render(cell))
		if i != len(widths)-1 {
			parts = append(parts, "│")
		}
	}
	parts = append(parts, "│")
	return strings.Join(parts, "")
}

func allocateColumnWidths(total int, cols []columnSpec) []int {
	if total < 10 {
		total = 10
	}
	sep := len(cols) - 1
	available := total - sep
	widths := make([]int, len(cols))
	used := 0
	for i, c := range cols {
		widths[i] = c.min
		used += c.min
	}
	remaining := available - used
	for remaining > 0 {
		changed := false
		for i, c := range cols {
			if remaining == 0 {
				break
			}
			if widths[i] >= c.max || c.weight == 0 {
				continue
			}
			widths[i]++
			remaining--
			changed = true
		}
		if !changed {
			break
		}
	}
	return widths
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "~"
	}
	return string(r[:max-1]) + "~"
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func center(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	left := (width - len(r)) / 2
	right := width - len(r) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
