package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		in    string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"1", true, true},
		{"t", true, true},
		{" TRUE ", true, true},
		{"pinned", true, true},
		{"false", false, true},
		{"0", false, true},
		{"unpinned", false, true},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		value, ok := ParseFlag(tt.in)
		assert.Equal(t, tt.value, value, "value for %q", tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
	}
}

func TestSessionActive(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, s.Active(now))
	assert.False(t, s.Active(now.Add(2*time.Hour)))

	revoked := now.Add(-time.Minute)
	s.RevokedAt = &revoked
	assert.False(t, s.Active(now))
}

func TestIsReactionType(t *testing.T) {
	assert.True(t, IsReactionType("heart"))
	assert.False(t, IsReactionType("angry"))
}
