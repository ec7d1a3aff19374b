// Package feed stores and lists the private and public message feeds,
// including reactions and comments on public messages.
package feed

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPublicLimit = 100
	AnonymousName      = "Anonymous"
)

// PublicEntry is a public message as listed. The moderation fields are only
// filled for a super-moderator.
type PublicEntry struct {
	models.PublicMessage
	PosterName     string           `json:"posterUsername,omitempty"`
	PosterEmail    string           `json:"posterGmail,omitempty"`
	ReactionCounts map[string]int64 `json:"reactionCounts,omitempty"`
	CommentCount   *int64           `json:"commentCount,omitempty"`
}

type ReactionSummary struct {
	Counts    map[string]int64 `json:"counts"`
	Reactions []string         `json:"reactions"`
}

type Service struct {
	repos *repositories.Repositories
}

func NewService(repos *repositories.Repositories) *Service {
	return &Service{repos: repos}
}

func UserReactor(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func VisitorReactor(visitorID string) string {
	return "visitor:" + visitorID
}

func displayName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return AnonymousName
	}
	return name
}

func (s *Service) PostPrivate(message string, name string, mood string) (*models.Message, error) {
	message = strings.TrimSpace(message)
	mood = strings.TrimSpace(mood)
	if message == "" || mood == "" {
		return nil, apperror.Validation("Message and mood are required")
	}

	m := &models.Message{Message: message, Name: displayName(name), Mood: mood}
	if err := s.repos.Messages.CreateMessage(m); err != nil {
		return nil, err
	}

	logrus.Debugf("New private message %d", m.ID)
	return m, nil
}

// PostPublic adds a message to the public feed. When poster is set the
// account is recorded for moderation.
func (s *Service) PostPublic(message string, name string, mood string, poster *models.UserAccount) (*models.PublicMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.Validation("Message is required")
	}

	m := &models.PublicMessage{
		Message: message,
		Name:    displayName(name),
		Mood:    strings.TrimSpace(mood),
	}
	if poster != nil {
		m.PosterUsername = poster.Username
		m.PosterGmail = poster.Gmail
	}
	if err := s.repos.Messages.CreatePublic(m); err != nil {
		return nil, err
	}

	logrus.Debugf("New public message %d", m.ID)
	return m, nil
}

func (s *Service) ListPublic(filter repositories.MessageFilter, moderator bool) ([]PublicEntry, error) {
	if filter.Limit <= 0 || filter.Limit > DefaultPublicLimit {
		filter.Limit = DefaultPublicLimit
	}

	messages, err := s.repos.Messages.ListPublic(filter)
	if err != nil {
		return nil, err
	}

	entries := make([]PublicEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, PublicEntry{PublicMessage: m})
	}
	if !moderator || len(entries) == 0 {
		return entries, nil
	}

	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	reactions, err := s.repos.Messages.ReactionCounts(ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.repos.Messages.CommentCounts(ids)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		id := entries[i].ID
		count := comments[id]
		entries[i].PosterName = entries[i].PosterUsername
		entries[i].PosterEmail = entries[i].PosterGmail
		entries[i].ReactionCounts = withAllTypes(reactions[id])
		entries[i].CommentCount = &count
	}
	return entries, nil
}

func withAllTypes(counts map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(models.ReactionTypes))
	for _, t := range models.ReactionTypes {
		out[t] = counts[t]
	}
	return out
}

// React adds or removes one reaction of reactor on a public message.
func (s *Service) React(id uint, reactor string, reactionType string, remove bool) (*ReactionSummary, error) {
	if !models.IsReactionType(reactionType) {
		return nil, apperror.Validation("Invalid reaction type")
	}
	if reactor == "" {
		return nil, apperror.Validation("Missing reactor")
	}
	if _, err := s.repos.Messages.GetPublic(id); err != nil {
		return nil, err
	}

	var err error
	if remove {
		err = s.repos.Messages.RemoveReaction(id, reactor, reactionType)
	} else {
		err = s.repos.Messages.AddReaction(&models.Reaction{PublicMessageID: id, Reactor: reactor, Type: reactionType})
	}
	if err != nil {
		return nil, err
	}

	return s.Reactions(id, reactor)
}

func (s *Service) Reactions(id uint, reactor string) (*ReactionSummary, error) {
	counts, err := s.repos.Messages.ReactionCounts([]uint{id})
	if err != nil {
		return nil, err
	}
	mine, err := s.repos.Messages.ReactorReactions(id, reactor)
	if err != nil {
		return nil, err
	}
	return &ReactionSummary{Counts: withAllTypes(counts[id]), Reactions: mine}, nil
}

func (s *Service) ListComments(id uint) ([]models.Comment, error) {
	if _, err := s.repos.Messages.GetPublic(id); err != nil {
		return nil, err
	}
	return s.repos.Messages.ListComments(id)
}

// AddComment stores a comment. It is signed with the username of user unless
// anonymous is set or there is no signed-in user.
func (s *Service) AddComment(id uint, text string, anonymous bool, user *models.UserAccount) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("Comment is required")
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return nil, apperror.Validation("Comment must be at most 500 characters")
	}
	if _, err := s.repos.Messages.GetPublic(id); err != nil {
		return nil, err
	}

	name := AnonymousName
	if user != nil && !anonymous {
		name = user.Username
	}

	comment := &models.Comment{PublicMessageID: id, DisplayName: name, Comment: text}
	if err := s.repos.Messages.AddComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
