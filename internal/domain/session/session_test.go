package session

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	now := time.Now().UTC()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	if s.IsExpired(now) {
		t.Fatalf("session should still be valid")
	}
	if !s.IsExpired(now.Add(2 * time.Minute)) {
		t.Fatalf("session should be expired")
	}
}
