package models

import "time"

// Message is a private note visible to admins only.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	Name      string    `json:"name"`
	Mood      string    `gorm:"not null" json:"mood"`
	Timestamp time.Time `gorm:"autoCreateTime;not null;index" json:"timestamp"`
	IsPinned  bool      `gorm:"not null;default:false;index" json:"is_pinned"`
}

func (Message) TableName() string {
	return "messages"
}

// PublicMessage is a post on the public feed. Poster fields are only ever
// shown to a super-moderator.
type PublicMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `json:"name"`
	Mood           string    `json:"mood"`
	Message        string    `gorm:"not null" json:"message"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	PosterUsername string    `json:"-"`
	PosterGmail    string    `json:"-"`
}

func (PublicMessage) TableName() string {
	return "public_messages"
}

const (
	ReactionLike  = "like"
	ReactionHeart = "heart"
	ReactionLaugh = "laugh"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
)

var ReactionTypes = []string{ReactionLike, ReactionHeart, ReactionLaugh, ReactionWow, ReactionSad}

func IsReactionType(t string) bool {
	for _, r := range ReactionTypes {
		if r == t {
			return true
		}
	}
	return false
}

type Reaction struct {
	ID              uint   `gorm:"primaryKey"`
	PublicMessageID uint   `gorm:"not null;uniqueIndex:idx_reaction_once"`
	Reactor         string `gorm:"not null;uniqueIndex:idx_reaction_once"`
	Type            string `gorm:"not null;uniqueIndex:idx_reaction_once"`
	CreatedAt       time.Time
}

func (Reaction) TableName() string {
	return "public_message_reactions"
}

const MaxCommentLength = 500

type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PublicMessageID uint      `gorm:"not null;index" json:"messageId"`
	DisplayName     string    `gorm:"not null" json:"displayName"`
	Comment         string    `gorm:"not null" json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "public_message_comments"
}
