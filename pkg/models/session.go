package models

import (
	"strings"
	"time"
)

type SessionKind string

const (
	SessionAdmin SessionKind = "admin"
	SessionUser  SessionKind = "user"
)

// Session is the server-side half of a login. The cookie only carries its ID.
type Session struct {
	ID        string      `gorm:"primaryKey"`
	Kind      SessionKind `gorm:"not null;index"`
	AccountID uint        `gorm:"not null;index"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// ParseFlag is the one truthiness coercion used for boolean inputs that do
// not arrive as JSON booleans (query strings, legacy 0/1 values).
func ParseFlag(v string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "yes", "pinned":
		return true, true
	case "0", "f", "false", "no", "unpinned":
		return false, true
	}
	return false, false
}
