package audit

import "time"

// Actions recorded on the auth audit trail.
const (
	ActionSignup          = "signup"
	ActionLogin           = "login"
	ActionLoginFailed     = "login_failed"
	ActionLogout          = "logout"
	ActionTokenRefresh    = "token_refresh"
	ActionRefreshRejected = "refresh_rejected"
)

// Event is emitted from auth flows to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Action     string    `json:"action"`
	Device     string    `json:"device,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
}
