package entity

import "time"

// Session is the server-side record behind one issued bearer token.
// Revoking the session invalidates exactly that token.
type Session struct {
	ID        string     // Session ID, carried in the token's "sid" claim
	UserID    uint       // Owner of the token
	UserAgent string     // Client's User-Agent header at issue time
	IPAddress string     // Client's IP address at issue time
	CreatedAt time.Time  // Issue time
	ExpiresAt time.Time  // Same instant as the token's "exp" claim
	RevokedAt *time.Time // Logout time (nil while active)
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked returns true if the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid returns true if the session is neither expired nor revoked.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
