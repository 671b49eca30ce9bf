package tui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nvm-manager/internal/engine"
	"nvm-manager/internal/versions"
)

const defaultMessageDuration = 5 * time.Second

// AppCallbacks connects the model to the engine. Each callback blocks and is
// only ever invoked from a tea.Cmd.
type AppCallbacks struct {
	ListInstalled func() engine.InstalledResult
	ListAvailable func() engine.AvailableResult
	Install       func(version string) engine.ActionResult
	Uninstall     func(version string) engine.ActionResult
	Switch        func(version string) engine.ActionResult

	MessageDuration time.Duration
	Version         string
	Theme           UITheme
}

type actionKind int

const (
	actionInstall actionKind = iota
	actionUninstall
	actionSwitch
)

func (a actionKind) doing() string {
	switch a {
	case actionInstall:
		return "installing"
	case actionUninstall:
		return "uninstalling"
	default:
		return "switching"
	}
}

type appModel struct {
	available versionTable
	installed versionTable
	callbacks AppCallbacks
	width     int
	height    int
	tab       activeTab
	filtering bool
	quitting  bool
	theme     UITheme
	spinner   spinner.Model

	loadingInstalled bool
	loadingAvailable bool
	degraded         bool

	busy        bool
	busyVersion string
	busyAction  actionKind
	settling    bool

	confirmUninstall string

	message    string
	messageOK  bool
	messageSeq int
	status     string
	appVersion string
}

type installedLoadedMsg struct {
	res engine.InstalledResult
}

type availableLoadedMsg struct {
	res engine.AvailableResult
}

type actionDoneMsg struct {
	action  actionKind
	version string
	res     engine.ActionResult
}

type messageExpiredMsg struct {
	seq int
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func RunApp(callbacks AppCallbacks) error {
	m := newAppModel(callbacks)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newAppModel(callbacks AppCallbacks) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	if callbacks.MessageDuration <= 0 {
		callbacks.MessageDuration = defaultMessageDuration
	}
	return appModel{
		available:        newVersionTable(kindAvailable, nil),
		installed:        newVersionTable(kindInstalled, nil),
		callbacks:        callbacks,
		tab:              tabAvailable,
		theme:            callbacks.Theme.withDefaults(),
		spinner:          s,
		loadingInstalled: true,
		loadingAvailable: true,
		status:           "Loading versions...",
		appVersion:       callbacks.Version,
	}
}

// Init loads both lists concurrently.
func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadInstalledCmd(), m.loadAvailableCmd(), m.spinner.Tick)
}

func (m appModel) loadInstalledCmd() tea.Cmd {
	if m.callbacks.ListInstalled == nil {
		return nil
	}
	return func() tea.Msg {
		return installedLoadedMsg{res: m.callbacks.ListInstalled()}
	}
}

func (m appModel) loadAvailableCmd() tea.Cmd {
	if m.callbacks.ListAvailable == nil {
		return nil
	}
	return func() tea.Msg {
		return availableLoadedMsg{res: m.callbacks.ListAvailable()}
	}
}

func (m appModel) actionCmd(action actionKind, version string) tea.Cmd {
	var fn func(string) engine.ActionResult
	switch action {
	case actionInstall:
		fn = m.callbacks.Install
	case actionUninstall:
		fn = m.callbacks.Uninstall
	default:
		fn = m.callbacks.Switch
	}
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		return actionDoneMsg{action: action, version: version, res: fn(version)}
	}
}

// showMessage sets the transient message and schedules its expiry. Only the
// latest message is cleared by its timer.
func (m *appModel) showMessage(text string, ok bool) tea.Cmd {
	m.messageSeq++
	m.message = text
	m.messageOK = ok
	seq := m.messageSeq
	return tea.Tick(m.callbacks.MessageDuration, func(time.Time) tea.Msg {
		return messageExpiredMsg{seq: seq}
	})
}

func (m appModel) spinning() bool {
	return m.busy || m.loadingInstalled || m.loadingAvailable
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		if !m.spinning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case installedLoadedMsg:
		m.loadingInstalled = false
		if msg.res.Success {
			m.installed.replaceRows(installedRows(msg.res.Versions))
		}
		m.settle()
		if !msg.res.Success {
			return m, m.showMessage(msg.res.Message, false)
		}
		return m, nil
	case availableLoadedMsg:
		m.loadingAvailable = false
		if msg.res.Success {
			m.degraded = msg.res.Degraded
			m.available.replaceRows(availableRows(msg.res.Versions))
		}
		m.settle()
		if !msg.res.Success || msg.res.Message != "" {
			return m, m.showMessage(msg.res.Message, false)
		}
		return m, nil
	case actionDoneMsg:
		cmds := []tea.Cmd{m.showMessage(msg.res.Message, msg.res.Success)}
		if !msg.res.Success {
			m.busy = false
			m.busyVersion = ""
		} else {
			// Actions stay disabled until the lists reflect the change.
			m.settling = true
			m.loadingInstalled = true
			cmds = append(cmds, m.loadInstalledCmd())
			if msg.action != actionSwitch {
				m.loadingAvailable = true
				cmds = append(cmds, m.loadAvailableCmd())
			}
			cmds = append(cmds, m.spinner.Tick)
		}
		m.refreshStatus()
		return m, tea.Batch(cmds...)
	case messageExpiredMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// settle releases the busy state once every post-action reload has arrived.
func (m *appModel) settle() {
	if m.settling && !m.loadingInstalled && !m.loadingAvailable {
		m.settling = false
		m.busy = false
		m.busyVersion = ""
	}
	m.refreshStatus()
}

func (m *appModel) refreshStatus() {
	switch {
	case m.busy:
		m.status = fmt.Sprintf("%s %s...", capitalize(m.busyAction.doing()), m.busyVersion)
	case m.loadingInstalled || m.loadingAvailable:
		m.status = "Loading versions..."
	default:
		m.status = "Ready"
	}
}

func (m *appModel) activeTable() *versionTable {
	if m.tab == tabInstalled {
		return &m.installed
	}
	return &m.available
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	if s == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.confirmUninstall != "" {
		return m.updateConfirm(s)
	}
	if m.filtering {
		return m.updateFilter(s)
	}
	table := m.activeTable()
	switch s {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab":
		m.tab = m.tab.next()
		return m, nil
	case "j", "down":
		table.moveCursor(1)
	case "k", "up":
		table.moveCursor(-1)
	case "pgdown":
		table.pageMove(1)
	case "pgup":
		table.pageMove(-1)
	case "home", "g":
		table.moveCursor(-len(table.filtered))
	case "end", "G":
		table.moveCursor(len(table.filtered))
	case "/":
		m.filtering = true
	case "esc":
		table.clearFilter()
	case "backspace":
		table.backspaceFilter()
	case "r":
		return m.refresh()
	case "enter":
		return m.primaryAction()
	case "i":
		if m.tab == tabAvailable {
			return m.startAction(actionInstall)
		}
	case "u":
		return m.startAction(actionSwitch)
	case "d":
		return m.requestUninstall()
	default:
		if isFilterShortcut(s) {
			table.appendFilterChar(s)
		}
	}
	return m, nil
}

func (m appModel) updateFilter(key string) (tea.Model, tea.Cmd) {
	table := m.activeTable()
	switch key {
	case "enter":
		m.filtering = false
	case "esc":
		table.clearFilter()
		m.filtering = false
	case "backspace":
		table.backspaceFilter()
	case "down":
		table.moveCursor(1)
	case "up":
		table.moveCursor(-1)
	default:
		if len(key) == 1 {
			table.appendFilterChar(key)
		} else if key == "space" || key == " " {
			table.appendFilterChar(" ")
		}
	}
	return m, nil
}

func (m appModel) updateConfirm(key string) (tea.Model, tea.Cmd) {
	version := m.confirmUninstall
	m.confirmUninstall = ""
	if key != "y" && key != "Y" {
		return m, m.showMessage("Uninstall canceled", true)
	}
	return m.begin(actionUninstall, version)
}

func (m appModel) refresh() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.showMessage(m.busyNotice(), false)
	}
	m.loadingInstalled = true
	m.loadingAvailable = true
	m.refreshStatus()
	return m, tea.Batch(m.loadInstalledCmd(), m.loadAvailableCmd(), m.spinner.Tick)
}

// primaryAction switches to installed versions and installs the rest.
func (m appModel) primaryAction() (tea.Model, tea.Cmd) {
	row, ok := m.activeTable().currentRow()
	if !ok {
		return m, nil
	}
	if row.Installed {
		return m.startAction(actionSwitch)
	}
	return m.startAction(actionInstall)
}

func (m appModel) requestUninstall() (tea.Model, tea.Cmd) {
	row, ok := m.activeTable().currentRow()
	if !ok {
		return m, nil
	}
	if m.busy {
		return m, m.showMessage(m.busyNotice(), false)
	}
	if !row.Installed {
		return m, m.showMessage(fmt.Sprintf("Version %s is not installed", row.Version), false)
	}
	if m.isCurrent(row.Version) {
		return m, m.showMessage(fmt.Sprintf("Cannot uninstall %s while it is the active version", row.Version), false)
	}
	m.confirmUninstall = row.Version
	return m, nil
}

func (m appModel) startAction(action actionKind) (tea.Model, tea.Cmd) {
	row, ok := m.activeTable().currentRow()
	if !ok {
		return m, nil
	}
	if m.busy {
		return m, m.showMessage(m.busyNotice(), false)
	}
	switch action {
	case actionInstall:
		if row.Installed {
			return m, m.showMessage(fmt.Sprintf("Version %s is already installed", row.Version), false)
		}
	case actionSwitch:
		if !row.Installed {
			return m, m.showMessage(fmt.Sprintf("Version %s is not installed", row.Version), false)
		}
		if m.isCurrent(row.Version) {
			return m, m.showMessage(fmt.Sprintf("Version %s is already active", row.Version), false)
		}
	}
	return m.begin(action, row.Version)
}

func (m appModel) begin(action actionKind, version string) (tea.Model, tea.Cmd) {
	cmd := m.actionCmd(action, version)
	if cmd == nil {
		return m, m.showMessage("Error: action unavailable", false)
	}
	m.busy = true
	m.busyVersion = version
	m.busyAction = action
	m.refreshStatus()
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m appModel) busyNotice() string {
	return fmt.Sprintf("Wait for %s %s to finish", m.busyAction.doing(), m.busyVersion)
}

func (m appModel) isCurrent(version string) bool {
	current := m.installed.currentVersion()
	return current != "" && versions.Normalize(current) == versions.Normalize(version)
}

func (m appModel) busyLabel(version string) string {
	if !m.busy || versions.Normalize(version) != versions.Normalize(m.busyVersion) {
		return ""
	}
	return strings.TrimSpace(stripANSI(m.spinner.View())) + " " + m.busyAction.doing()
}

func isFilterShortcut(key string) bool {
	if len(key) != 1 {
		return false
	}
	c := key[0]
	return (c >= '0' && c <= '9') || c == '.' || c == 'v'
}

func (m appModel) View() string {
	if m.quitting {
		return "Exited.\n"
	}
	if m.width <= 0 {
		m.width = 120
	}
	if m.height <= 0 {
		m.height = 36
	}

	table := m.activeTable()
	filter := table.filter
	if m.filtering {
		filter += "|"
	}
	status := fmt.Sprintf("List: %s | Filter: %s | Visible: %d/%d | Active: %s | %s",
		tabLabel(m.tab), filter, len(table.filtered), len(table.rows), orNone(m.installed.currentVersion()), m.status)
	if m.spinning() {
		status = strings.TrimSpace(stripANSI(m.spinner.View())) + " " + status
	}
	if m.degraded && m.tab == tabAvailable {
		status += " | ls-remote fallback"
	}

	help := globalHelp() + " | "
	switch {
	case m.filtering:
		help += filterHelp()
	case m.tab == tabInstalled:
		help += installedHelp()
	default:
		help += availableHelp()
	}

	header := m.renderHeader(m.width)
	help = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HelpText)).Render(clampLine(help, m.width))
	status = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusText)).Render(clampLine(status, m.width))
	message := ""
	if m.message != "" {
		message = messageStyle(m.messageOK, m.theme).Render(clampLine(m.message, m.width))
	}

	bodyHeight := m.height - 5
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	table.setHeight(bodyHeight)

	gap := 1
	availableWidth := m.width
	if availableWidth < 60 {
		availableWidth = 60
	}
	contentWidth := availableWidth - gap
	leftWidth := (contentWidth * 2) / 3
	if leftWidth < 44 {
		leftWidth = 44
	}
	rightWidth := contentWidth - leftWidth

	body := table.renderTableWithTheme(leftWidth, m.theme, m.busyLabel)
	if rightWidth >= 24 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.renderDetailPanel(rightWidth-gap, bodyHeight))
	}

	view := strings.Join([]string{header, help, status, body, message}, "\n")
	if m.confirmUninstall != "" {
		backdrop := applyBackdrop(view, m.width, m.height)
		view = overlayCentered(backdrop, m.renderConfirmOverlay(), m.width, m.height)
	}
	return view + "\n"
}

func (m appModel) renderHeader(maxWidth int) string {
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HeaderText)).Bold(true).
		Render("nvm-manager " + formatVersionLabel(m.appVersion))
	tabs := make([]string, 0, 2)
	for _, t := range []activeTab{tabAvailable, tabInstalled} {
		label := " " + tabLabel(t) + " "
		if t == m.tab {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.SelectionFg)).
				Background(lipgloss.Color(m.theme.TabActive)).
				Bold(true).
				Render(label))
			continue
		}
		tabs = append(tabs, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TabInactive)).Render(label))
	}
	line := title + "  " + strings.Join(tabs, " ")
	if lipgloss.Width(line) > maxWidth {
		return clampLine(stripANSI(line), maxWidth)
	}
	return line
}

func (m appModel) renderDetailPanel(width, height int) string {
	row, ok := m.activeTable().currentRow()
	var lines []string
	if !ok {
		empty := "No versions"
		if m.loadingInstalled || m.loadingAvailable {
			empty = "Loading..."
		}
		lines = []string{"Version Details", empty}
	} else {
		lines = []string{
			"Version Details",
			fmt.Sprintf("version: %s", row.Version),
		}
		if row.Npm != "" {
			lines = append(lines, fmt.Sprintf("npm: %s", row.Npm))
		}
		if row.LTS != "" {
			lines = append(lines, fmt.Sprintf("lts: %s", row.LTS))
		}
		if row.Date != "" {
			lines = append(lines, fmt.Sprintf("released: %s", row.Date))
		}
		lines = append(lines, fmt.Sprintf("status: %s", statusLabel(row)))
		if busy := m.busyLabel(row.Version); busy != "" {
			lines = append(lines, fmt.Sprintf("running: %s", busy))
		}
		lines = append(lines, "", m.rowActions(row))
	}
	lines = fitAndWrapLines(lines, innerHeight(height), panelInnerWidth(width))
	for i := range lines {
		if i == 0 {
			lines[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TableHeader)).Bold(true).Render(lines[i])
			continue
		}
		lines[i] = colorizeDetailLine(lines[i], m.theme)
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.PaneBorderInactive)).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) rowActions(row versionRow) string {
	switch {
	case m.busy:
		return "actions: disabled while " + m.busyAction.doing()
	case !row.Installed:
		return "actions: enter/i install"
	case m.isCurrent(row.Version):
		return "actions: none (active version)"
	default:
		return "actions: enter/u use, d uninstall"
	}
}

func (m appModel) renderConfirmOverlay() string {
	lines := []string{
		fmt.Sprintf("Uninstall Node.js %s?", m.confirmUninstall),
		"",
		"y confirm, any other key cancels",
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Foreground(lipgloss.Color(m.theme.TextPrimary)).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

func formatVersionLabel(v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "vdev"
	}
	if strings.HasPrefix(trimmed, "v") {
		return trimmed
	}
	return "v" + trimmed
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
