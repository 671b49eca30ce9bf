package tui

type activeTab int

const (
	tabAvailable activeTab = iota
	tabInstalled
)

func tabLabel(t activeTab) string {
	if t == tabInstalled {
		return "Installed"
	}
	return "Available"
}

func (t activeTab) next() activeTab {
	if t == tabAvailable {
		return tabInstalled
	}
	return tabAvailable
}

func globalHelp() string {
	return "Global: tab switch list, r refresh, q quit"
}

func availableHelp() string {
	return "Available: j/k move, pgup/pgdown page, enter install or use, i install, u use, d uninstall, / or digits filter, esc clear"
}

func installedHelp() string {
	return "Installed: j/k move, pgup/pgdown page, enter/u use, d uninstall, / or digits filter, esc clear"
}

func filterHelp() string {
	return "Filter: type to narrow, backspace delete, enter done, esc clear"
}
