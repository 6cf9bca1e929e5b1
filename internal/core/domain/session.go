package domain

import "time"

// SessionTTL is how long a session is reused before it is refreshed.
const SessionTTL = 15 * time.Minute

// Session is the authorization context returned by the catalogue's
// authentication exchange. A Session value is always fully populated;
// the absence of a session is represented by a nil *Session.
type Session struct {
	// SessionID identifies the session on every authorized request.
	SessionID string `json:"session_id"`

	// AuthToken signs authorized gateway requests.
	AuthToken string `json:"auth_token"`

	// LicenseToken is exchanged together with an asset token for a media URL.
	LicenseToken string `json:"license_token"`

	// UserID is the catalogue account id; zero for anonymous sessions.
	UserID int64 `json:"user_id"`

	// Privileged reports whether the identity is entitled to lossless media.
	Privileged bool `json:"privileged"`

	// IssuedAt is when the session was obtained.
	IssuedAt time.Time `json:"issued_at"`
}

// Valid reports whether the session carries every field required to
// authorize requests.
func (s *Session) Valid() bool {
	return s != nil && s.SessionID != "" && s.AuthToken != "" && s.LicenseToken != ""
}

// Stale reports whether the session must be refreshed at now.
// A nil session is always stale.
func (s *Session) Stale(now time.Time, ttl time.Duration) bool {
	if s == nil {
		return true
	}
	return now.Sub(s.IssuedAt) >= ttl
}

// ExpiresAt returns when the session becomes stale.
func (s *Session) ExpiresAt(ttl time.Duration) time.Time {
	return s.IssuedAt.Add(ttl)
}

// Anonymous reports whether the session has no account behind it.
func (s *Session) Anonymous() bool {
	return s.UserID == 0
}
