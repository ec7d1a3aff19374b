package repositories

import (
	"strings"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgSignupNotFound = "Signup request not found or already processed"

type ISignupRepository interface {
	Create(request *models.SignupRequest) error
	GetPending(id uint) (*models.SignupRequest, error)
	ListPending() ([]models.SignupRequest, error)
	PendingExists(username string, gmail string) (bool, error)
	PurgeDeclined(username string, gmail string) error
	Transition(id uint, from models.SignupStatus, to models.SignupStatus) error

	AddVerifiedGmail(gmail string) error
	IsVerifiedGmail(gmail string) (bool, error)
	ListVerifiedGmails() ([]models.VerifiedGmail, error)
}

type SignupRepository struct {
	db *gorm.DB
}

func NewSignupRepository(db *gorm.DB) *SignupRepository {
	return &SignupRepository{db: db}
}

func (s *SignupRepository) Create(request *models.SignupRequest) error {
	return createErr(s.db.Create(request).Error, "A sign up request for this username or gmail is already pending approval.")
}

func (s *SignupRepository) GetPending(id uint) (*models.SignupRequest, error) {
	var request models.SignupRequest
	query := s.db.Where("id = ? AND status = ?", id, models.SignupPending)
	if err := findOne(query, &request, msgSignupNotFound); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *SignupRepository) ListPending() ([]models.SignupRequest, error) {
	requests := []models.SignupRequest{}
	err := s.db.Where("status = ?", models.SignupPending).
		Order("created_at ASC").Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, apperror.Store(err)
	}
	return requests, nil
}

func (s *SignupRepository) PendingExists(username string, gmail string) (bool, error) {
	var count int64
	err := s.db.Model(&models.SignupRequest{}).
		Where("(username = ? OR gmail = ?) AND status = ?", username, gmail, models.SignupPending).
		Count(&count).Error
	if err != nil {
		return false, apperror.Store(err)
	}
	return count > 0, nil
}

func (s *SignupRepository) PurgeDeclined(username string, gmail string) error {
	err := s.db.Where("(username = ? OR gmail = ?) AND status = ?", username, gmail, models.SignupDeclined).
		Delete(&models.SignupRequest{}).Error
	return apperror.Store(err)
}

// Transition moves a request from one status to another. It reports
// NotFound when no request with that id is in the from status.
func (s *SignupRepository) Transition(id uint, from models.SignupStatus, to models.SignupStatus) error {
	db := s.db.Model(&models.SignupRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if db.Error != nil {
		return apperror.Store(db.Error)
	}
	if db.RowsAffected == 0 {
		return apperror.NotFound(msgSignupNotFound)
	}
	return nil
}

func (s *SignupRepository) AddVerifiedGmail(gmail string) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.VerifiedGmail{Gmail: strings.ToLower(strings.TrimSpace(gmail))}).Error
	return apperror.Store(err)
}

func (s *SignupRepository) IsVerifiedGmail(gmail string) (bool, error) {
	var count int64
	err := s.db.Model(&models.VerifiedGmail{}).
		Where("gmail = ?", strings.ToLower(strings.TrimSpace(gmail))).
		Count(&count).Error
	if err != nil {
		return false, apperror.Store(err)
	}
	return count > 0, nil
}

func (s *SignupRepository) ListVerifiedGmails() ([]models.VerifiedGmail, error) {
	gmails := []models.VerifiedGmail{}
	if err := s.db.Order("gmail ASC").Find(&gmails).Error; err != nil {
		return nil, apperror.Store(err)
	}
	return gmails, nil
}
