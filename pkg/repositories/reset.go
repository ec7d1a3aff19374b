package repositories

import (
	"time"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"gorm.io/gorm"
)

type IResetRepository interface {
	Create(token *models.PasswordResetToken) error
	FindValid(token string, now time.Time) (*models.PasswordResetToken, error)
	DeleteForUser(userID uint) error
}

type ResetRepository struct {
	db *gorm.DB
}

func NewResetRepository(db *gorm.DB) *ResetRepository {
	return &ResetRepository{db: db}
}

func (r *ResetRepository) Create(token *models.PasswordResetToken) error {
	return apperror.Store(r.db.Create(token).Error)
}

func (r *ResetRepository) FindValid(token string, now time.Time) (*models.PasswordResetToken, error) {
	var reset models.PasswordResetToken
	query := r.db.Where("token = ? AND expires_at > ?", token, now)
	if err := findOne(query, &reset, "Invalid or expired token"); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetRepository) DeleteForUser(userID uint) error {
	return apperror.Store(r.db.Where("user_id = ?", userID).Delete(&models.PasswordResetToken{}).Error)
}
