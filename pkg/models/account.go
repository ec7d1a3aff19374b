package models

import "time"

// AdminAccount is a moderator of the board. Owners manage other admins.
type AdminAccount struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	IsOwner          bool      `gorm:"not null;default:false" json:"is_owner"`
	IsSuperModerator bool      `gorm:"not null;default:false" json:"is_super_moderator"`
	CreatedAt        time.Time `json:"created_at"`
}

func (AdminAccount) TableName() string {
	return "admin_users"
}

// UserAccount is an end user. Rows are only created by approving a signup request.
type UserAccount struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Gmail        string `gorm:"uniqueIndex;not null" json:"gmail"`
}

func (UserAccount) TableName() string {
	return "users"
}
