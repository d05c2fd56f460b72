package domain

import "time"

// SessionEventType defines the type of session lifecycle event
type SessionEventType string

const (
	// Startup events
	SessionRestoredEvent    SessionEventType = "SESSION_RESTORED"
	SessionRestoreSkipEvent SessionEventType = "SESSION_RESTORE_SKIPPED"

	// Authentication events
	UserLoginEvent        SessionEventType = "USER_LOGIN"
	UserLoginFailureEvent SessionEventType = "USER_LOGIN_FAILED"
	UserRegisteredEvent   SessionEventType = "USER_REGISTERED"
	UserLogoutEvent       SessionEventType = "USER_LOGOUT"

	// Credential events
	TokenRefreshedEvent     SessionEventType = "TOKEN_REFRESHED"
	SessionInvalidatedEvent SessionEventType = "SESSION_INVALIDATED"
	ProfileUpdatedEvent     SessionEventType = "PROFILE_UPDATED"
)

// SessionEvent records a session lifecycle transition for audit logging.
type SessionEvent struct {
	EventType SessionEventType `json:"event_type"`
	UserID    string           `json:"user_id,omitempty"`
	Email     string           `json:"email,omitempty"`
	Role      Role             `json:"role,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	ErrorMsg  string           `json:"error_msg,omitempty"`
	Success   bool             `json:"success"`
}

// NewSessionEvent creates an event with common fields populated.
func NewSessionEvent(eventType SessionEventType) *SessionEvent {
	return &SessionEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithUser sets the identity fields from a profile.
func (e *SessionEvent) WithUser(u *UserProfile) *SessionEvent {
	if u != nil {
		e.UserID = u.ID
		e.Email = u.Email
		e.Role = u.Role
	}
	return e
}

// WithError marks the event failed and records the cause.
func (e *SessionEvent) WithError(err error) *SessionEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
