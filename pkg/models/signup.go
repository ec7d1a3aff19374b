package models

import "time"

type SignupStatus string

const (
	SignupPending  SignupStatus = "pending"
	SignupApproved SignupStatus = "approved"
	SignupDeclined SignupStatus = "declined"
)

// SignupRequest is an application for a UserAccount awaiting admin review.
// Username and gmail are unique among pending rows only.
type SignupRequest struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"not null;index;uniqueIndex:idx_signup_pending_username,where:status = 'pending'" json:"username"`
	PasswordHash string       `gorm:"not null" json:"-"`
	Gmail        string       `gorm:"not null;index;uniqueIndex:idx_signup_pending_gmail,where:status = 'pending'" json:"gmail"`
	Status       SignupStatus `gorm:"not null;index" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (SignupRequest) TableName() string {
	return "signup_requests"
}

type VerifiedGmail struct {
	Gmail string `gorm:"primaryKey" json:"gmail"`
}

func (VerifiedGmail) TableName() string {
	return "verified_gmails"
}

type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
