package auth

// Package auth contains domain-level types for the admin session.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// StorageKey is the durable-store key under which the bearer token is kept.
const StorageKey = "admin_token"

// LogoutEventName names the process-wide notification emitted on an external logout.
const LogoutEventName = "admin-logout"

// DefaultInactivityTimeout is the sliding inactivity window for an authenticated session.
const DefaultInactivityTimeout = time.Hour

// State is the authentication state of a session.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Activity is a user-interaction signal observed by the console.
// Only the qualifying activities re-arm the inactivity window.
type Activity string

const (
	ActivityPointerPress Activity = "mousedown"
	ActivityKeyPress     Activity = "keydown"
	ActivityScroll       Activity = "scroll"
	ActivityTouchStart   Activity = "touchstart"
	// ActivityPointerMove is observed but never extends the session.
	ActivityPointerMove Activity = "mousemove"
)

// Qualifies reports whether the activity resets the inactivity window.
func (a Activity) Qualifies() bool {
	switch a {
	case ActivityPointerPress, ActivityKeyPress, ActivityScroll, ActivityTouchStart:
		return true
	default:
		return false
	}
}

// ParseActivity maps a DOM-style event name to an Activity.
// Unknown names are returned verbatim and never qualify.
func ParseActivity(name string) Activity {
	return Activity(strings.ToLower(strings.TrimSpace(name)))
}

// LogoutReason says why a session was torn down from outside the caller's control.
type LogoutReason string

const (
	// ReasonInactivity is used when the sliding inactivity window elapsed.
	ReasonInactivity LogoutReason = "inactivity"
	// ReasonUnauthorized is used when the admin API answered 401.
	ReasonUnauthorized LogoutReason = "unauthorized"
)

// LogoutEvent is delivered to external-logout subscribers.
type LogoutEvent struct {
	Name   string
	Reason LogoutReason
	At     time.Time
}

// NewLogoutEvent builds the admin-logout event for reason at the given time.
func NewLogoutEvent(reason LogoutReason, at time.Time) LogoutEvent {
	return LogoutEvent{Name: LogoutEventName, Reason: reason, At: at}
}

// Notice returns the operator-facing sentence for the event.
func (e LogoutEvent) Notice() string {
	switch e.Reason {
	case ReasonInactivity:
		return "session expired after inactivity; please sign in again"
	case ReasonUnauthorized:
		return "session rejected by the server; please sign in again"
	default:
		return "signed out"
	}
}
