package repositories

import (
	"strings"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"gorm.io/gorm"
)

const (
	msgAdminNotFound = "Admin user not found"
	msgUserNotFound  = "User not found"
)

type IAccountRepository interface {
	CreateAdmin(admin *models.AdminAccount) error
	GetAdmin(id uint) (*models.AdminAccount, error)
	GetAdminByUsername(username string) (*models.AdminAccount, error)
	ListAdmins() ([]models.AdminAccount, error)
	CountAdmins() (int64, error)
	DeleteAdmin(id uint) error
	SetSuperModerator(username string) error

	CreateUser(user *models.UserAccount) error
	GetUser(id uint) (*models.UserAccount, error)
	GetUserByUsername(username string) (*models.UserAccount, error)
	GetUserByGmail(gmail string) (*models.UserAccount, error)
	UserExists(username string, gmail string) (bool, error)
	ListUsers() ([]models.UserAccount, error)
	DeleteUser(id uint) error
	UpdateUserPassword(id uint, passwordHash string) error
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (a *AccountRepository) CreateAdmin(admin *models.AdminAccount) error {
	return createErr(a.db.Create(admin).Error, "Username already exists")
}

func (a *AccountRepository) GetAdmin(id uint) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	if err := findOne(a.db.Where("id = ?", id), &admin, msgAdminNotFound); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AccountRepository) GetAdminByUsername(username string) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	if err := findOne(a.db.Where("username = ?", username), &admin, msgAdminNotFound); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AccountRepository) ListAdmins() ([]models.AdminAccount, error) {
	admins := []models.AdminAccount{}
	if err := a.db.Order("created_at DESC").Order("id DESC").Find(&admins).Error; err != nil {
		return nil, apperror.Store(err)
	}
	return admins, nil
}

func (a *AccountRepository) CountAdmins() (int64, error) {
	var count int64
	if err := a.db.Model(&models.AdminAccount{}).Count(&count).Error; err != nil {
		return 0, apperror.Store(err)
	}
	return count, nil
}

func (a *AccountRepository) DeleteAdmin(id uint) error {
	return deleteErr(a.db.Delete(&models.AdminAccount{}, id), msgAdminNotFound)
}

// SetSuperModerator grants the super-moderator flag to the admin whose
// username matches case-insensitively. A missing admin is not an error.
func (a *AccountRepository) SetSuperModerator(username string) error {
	err := a.db.Model(&models.AdminAccount{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Update("is_super_moderator", true).Error
	return apperror.Store(err)
}

func (a *AccountRepository) CreateUser(user *models.UserAccount) error {
	return createErr(a.db.Create(user).Error, "User or Gmail already exists")
}

func (a *AccountRepository) GetUser(id uint) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := findOne(a.db.Where("id = ?", id), &user, msgUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AccountRepository) GetUserByUsername(username string) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := findOne(a.db.Where("username = ?", username), &user, msgUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AccountRepository) GetUserByGmail(gmail string) (*models.UserAccount, error) {
	var user models.UserAccount
	if err := findOne(a.db.Where("gmail = ?", gmail), &user, "No user found with that Gmail"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AccountRepository) UserExists(username string, gmail string) (bool, error) {
	var count int64
	err := a.db.Model(&models.UserAccount{}).
		Where("username = ? OR gmail = ?", username, gmail).
		Count(&count).Error
	if err != nil {
		return false, apperror.Store(err)
	}
	return count > 0, nil
}

func (a *AccountRepository) ListUsers() ([]models.UserAccount, error) {
	users := []models.UserAccount{}
	if err := a.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, apperror.Store(err)
	}
	return users, nil
}

func (a *AccountRepository) DeleteUser(id uint) error {
	return deleteErr(a.db.Delete(&models.UserAccount{}, id), msgUserNotFound)
}

func (a *AccountRepository) UpdateUserPassword(id uint, passwordHash string) error {
	db := a.db.Model(&models.UserAccount{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if db.Error != nil {
		return apperror.Store(db.Error)
	}
	if db.RowsAffected == 0 {
		return apperror.NotFound(msgUserNotFound)
	}
	return nil
}
