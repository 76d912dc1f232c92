package social

import "time"

// Session maps an opaque bearer token to an account. Expiry is checked
// lazily at resolution time; there is no background sweep.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
