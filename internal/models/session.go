package models

import "time"

// SessionState represents the state of a wheel session
type SessionState string

const (
	SessionChecking    SessionState = "CHECKING"
	SessionReady       SessionState = "READY"
	SessionSpinning    SessionState = "SPINNING"
	SessionAwaitingLog SessionState = "AWAITING_LOG"
	SessionDisabled    SessionState = "DISABLED"
)

// SessionContext is the ephemeral per-visitor state created by a successful
// eligibility check. ServerSpinNumber tracks the server-assigned counter and
// is independent of the locally computed spin-of-the-day ordinal; the two
// can diverge when local history is lost, which is accepted.
type SessionContext struct {
	Phone            string       `json:"phone"`
	Name             string       `json:"name"`
	ServerSpinNumber int          `json:"serverSpinNumber"`
	FirstSpin        bool         `json:"firstSpin"`
	State            SessionState `json:"state"`
	LastActivity     time.Time    `json:"-"`
}

// SpinResult is the outcome of a single spin as returned to the UI
type SpinResult struct {
	Gift            Gift   `json:"gift"`
	Ordinal         int    `json:"ordinal"` // spin-of-the-day, locally computed
	SpinNumber      int    `json:"spinNumber"`
	AllowedNextSpin bool   `json:"allowedNextSpin"`
	Logged          bool   `json:"logged"` // false when the outcome never reached the server
	Message         string `json:"message,omitempty"`
}
