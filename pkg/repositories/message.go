package repositories

import (
	"strings"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgMessageNotFound       = "Message not found"
	msgPublicMessageNotFound = "Public message not found"
)

// MessageFilter narrows a message listing. The zero value lists everything
// newest-first.
type MessageFilter struct {
	Mood   string
	Pinned *bool
	Search string
	Oldest bool
	Limit  int
}

type IMessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessage(id uint) (*models.Message, error)
	ListMessages(filter MessageFilter) ([]models.Message, error)
	SetPinned(id uint, pinned bool) error
	DeleteMessage(id uint) error

	CreatePublic(message *models.PublicMessage) error
	GetPublic(id uint) (*models.PublicMessage, error)
	ListPublic(filter MessageFilter) ([]models.PublicMessage, error)
	DeletePublic(id uint) error

	AddReaction(reaction *models.Reaction) error
	RemoveReaction(messageID uint, reactor string, reactionType string) error
	ReactionCounts(messageIDs []uint) (map[uint]map[string]int64, error)
	ReactorReactions(messageID uint, reactor string) ([]string, error)

	AddComment(comment *models.Comment) error
	ListComments(messageID uint) ([]models.Comment, error)
	CommentCounts(messageIDs []uint) (map[uint]int64, error)
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func direction(oldest bool) string {
	if oldest {
		return "ASC"
	}
	return "DESC"
}

func applyTextFilter(query *gorm.DB, filter MessageFilter) *gorm.DB {
	if filter.Mood != "" {
		query = query.Where("mood = ?", filter.Mood)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("(LOWER(message) LIKE ? OR LOWER(name) LIKE ?)", like, like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}

func (m *MessageRepository) CreateMessage(message *models.Message) error {
	return apperror.Store(m.db.Create(message).Error)
}

func (m *MessageRepository) GetMessage(id uint) (*models.Message, error) {
	var message models.Message
	if err := findOne(m.db.Where("id = ?", id), &message, msgMessageNotFound); err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns pinned messages first, each group ordered by
// timestamp in the direction the filter asks for.
func (m *MessageRepository) ListMessages(filter MessageFilter) ([]models.Message, error) {
	dir := direction(filter.Oldest)
	query := m.db.Model(&models.Message{})
	if filter.Pinned != nil {
		query = query.Where("is_pinned = ?", *filter.Pinned)
	}
	query = applyTextFilter(query, filter).
		Order("is_pinned DESC").
		Order("timestamp " + dir).
		Order("id " + dir)

	messages := []models.Message{}
	if err := query.Find(&messages).Error; err != nil {
		return nil, apperror.Store(err)
	}
	return messages, nil
}

func (m *MessageRepository) SetPinned(id uint, pinned bool) error {
	if _, err := m.GetMessage(id); err != nil {
		return err
	}
	err := m.db.Model(&models.Message{}).Where("id = ?", id).Update("is_pinned", pinned).Error
	return apperror.Store(err)
}

func (m *MessageRepository) DeleteMessage(id uint) error {
	return deleteErr(m.db.Delete(&models.Message{}, id), msgMessageNotFound)
}

func (m *MessageRepository) CreatePublic(message *models.PublicMessage) error {
	return apperror.Store(m.db.Create(message).Error)
}

func (m *MessageRepository) GetPublic(id uint) (*models.PublicMessage, error) {
	var message models.PublicMessage
	if err := findOne(m.db.Where("id = ?", id), &message, msgPublicMessageNotFound); err != nil {
		return nil, err
	}
	return &message, nil
}

func (m *MessageRepository) ListPublic(filter MessageFilter) ([]models.PublicMessage, error) {
	dir := direction(filter.Oldest)
	query := applyTextFilter(m.db.Model(&models.PublicMessage{}), filter).
		Order("created_at " + dir).
		Order("id " + dir)

	messages := []models.PublicMessage{}
	if err := query.Find(&messages).Error; err != nil {
		return nil, apperror.Store(err)
	}
	return messages, nil
}

// DeletePublic removes a public message together with its reactions and comments.
func (m *MessageRepository) DeletePublic(id uint) error {
	var deleteErrOut error
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("public_message_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("public_message_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		deleteErrOut = deleteErr(tx.Delete(&models.PublicMessage{}, id), msgPublicMessageNotFound)
		return deleteErrOut
	})
	if deleteErrOut != nil {
		return deleteErrOut
	}
	return apperror.Store(err)
}

func (m *MessageRepository) AddReaction(reaction *models.Reaction) error {
	err := m.db.Clauses(clause.OnConflict{DoNothing: true}).Create(reaction).Error
	return apperror.Store(err)
}

func (m *MessageRepository) RemoveReaction(messageID uint, reactor string, reactionType string) error {
	err := m.db.Where("public_message_id = ? AND reactor = ? AND type = ?", messageID, reactor, reactionType).
		Delete(&models.Reaction{}).Error
	return apperror.Store(err)
}

type reactionCount struct {
	PublicMessageID uint
	Type            string
	Count           int64
}

func (m *MessageRepository) ReactionCounts(messageIDs []uint) (map[uint]map[string]int64, error) {
	counts := map[uint]map[string]int64{}
	if len(messageIDs) == 0 {
		return counts, nil
	}

	var rows []reactionCount
	err := m.db.Model(&models.Reaction{}).
		Select("public_message_id, type, COUNT(*) AS count").
		Where("public_message_id IN ?", messageIDs).
		Group("public_message_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Store(err)
	}

	for _, id := range messageIDs {
		counts[id] = map[string]int64{}
	}
	for _, row := range rows {
		counts[row.PublicMessageID][row.Type] = row.Count
	}
	return counts, nil
}

func (m *MessageRepository) ReactorReactions(messageID uint, reactor string) ([]string, error) {
	types := []string{}
	err := m.db.Model(&models.Reaction{}).
		Where("public_message_id = ? AND reactor = ?", messageID, reactor).
		Order("type ASC").
		Pluck("type", &types).Error
	if err != nil {
		return nil, apperror.Store(err)
	}
	return types, nil
}

func (m *MessageRepository) AddComment(comment *models.Comment) error {
	return apperror.Store(m.db.Create(comment).Error)
}

func (m *MessageRepository) ListComments(messageID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := m.db.Where("public_message_id = ?", messageID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperror.Store(err)
	}
	return comments, nil
}

type commentCount struct {
	PublicMessageID uint
	Count           int64
}

func (m *MessageRepository) CommentCounts(messageIDs []uint) (map[uint]int64, error) {
	counts := map[uint]int64{}
	if len(messageIDs) == 0 {
		return counts, nil
	}

	var rows []commentCount
	err := m.db.Model(&models.Comment{}).
		Select("public_message_id, COUNT(*) AS count").
		Where("public_message_id IN ?", messageIDs).
		Group("public_message_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Store(err)
	}

	for _, row := range rows {
		counts[row.PublicMessageID] = row.Count
	}
	return counts, nil
}
