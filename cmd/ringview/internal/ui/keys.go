package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

// digitValue maps 1-9 to 10-90 and 0 to 100.
func digitValue(key string) (float64, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	d := float64(key[0] - '0')
	if d == 0 {
		return 100, true
	}
	return d * 10, true
}

func helpText() string {
	return "s spin  x stop  0-9 animate to %  +/- step  e easing  r reset  q quit"
}
