package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a logged-in profile's bearer session.
type Session struct {
	ID         int64      `json:"-"`
	SessionID  uuid.UUID  `json:"sessionId"`
	TokenHash  string     `json:"-"`
	ProfileID  uuid.UUID  `json:"profileId"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
