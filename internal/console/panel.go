// Package console holds the operator-facing view state: whether the login view or the
// dashboard is showing, and which dashboard panel is active.
package console

import "strings"

// Panel is a dashboard section. Exactly one panel is active at a time.
type Panel int

const (
	PanelEvents Panel = iota
	PanelRanking
	PanelReward
	PanelUsers
	PanelServiceAgents
	PanelSystem
)

var panelNames = map[Panel]struct{ id, label string }{
	PanelEvents:        {"events", "Contest management"},
	PanelRanking:       {"ranking", "Rankings and results"},
	PanelReward:        {"reward", "Prizes and claims"},
	PanelUsers:         {"users", "User management"},
	PanelServiceAgents: {"agents", "Service agents"},
	PanelSystem:        {"system", "System configuration"},
}

// Panels lists every panel in sidebar order.
func Panels() []Panel {
	return []Panel{PanelEvents, PanelRanking, PanelReward, PanelUsers, PanelServiceAgents, PanelSystem}
}

// Valid reports whether p is a known panel.
func (p Panel) Valid() bool {
	_, ok := panelNames[p]
	return ok
}

// String returns the panel identifier used on the command line.
func (p Panel) String() string {
	if n, ok := panelNames[p]; ok {
		return n.id
	}
	return "unknown"
}

// Label returns the sidebar caption.
func (p Panel) Label() string {
	if n, ok := panelNames[p]; ok {
		return n.label
	}
	return "Unknown"
}

// ParsePanel maps an identifier such as "events" or "agents" to a Panel.
func ParsePanel(s string) (Panel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Panels() {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// View is the top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
)

func (v View) String() string {
	if v == ViewDashboard {
		return "dashboard"
	}
	return "login"
}
