package repositories

import (
	"time"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"gorm.io/gorm"
)

type ISessionRepository interface {
	Create(session *models.Session) error
	Get(id string) (*models.Session, error)
	Revoke(id string, at time.Time) error
	RevokeAccount(kind models.SessionKind, accountID uint, at time.Time) error
	DeleteExpired(now time.Time) (int64, error)
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (s *SessionRepository) Create(session *models.Session) error {
	return apperror.Store(s.db.Create(session).Error)
}

func (s *SessionRepository) Get(id string) (*models.Session, error) {
	var session models.Session
	if err := findOne(s.db.Where("id = ?", id), &session, "session not found"); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionRepository) Revoke(id string, at time.Time) error {
	err := s.db.Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
	return apperror.Store(err)
}

func (s *SessionRepository) RevokeAccount(kind models.SessionKind, accountID uint, at time.Time) error {
	err := s.db.Model(&models.Session{}).
		Where("kind = ? AND account_id = ? AND revoked_at IS NULL", kind, accountID).
		Update("revoked_at", at).Error
	return apperror.Store(err)
}

func (s *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	db := s.db.Where("expires_at < ? OR revoked_at IS NOT NULL", now).Delete(&models.Session{})
	if db.Error != nil {
		return 0, apperror.Store(db.Error)
	}
	return db.RowsAffected, nil
}
