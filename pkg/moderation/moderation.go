// Package moderation holds the operations available to admin sessions:
// message pinning and deletion, poster lookup and account management.
package moderation

import (
	"crypto/subtle"
	"strings"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/sirupsen/logrus"
)

const (
	MinPasswordLength = 6
	MinUsernameLength = 3

	MsgOwnerOnly = "Only owners can manage admin accounts"
)

type Service struct {
	repos          *repositories.Repositories
	authn          *auth.Authenticator
	superModerator string
	inviteCode     string
}

func NewService(repos *repositories.Repositories, authn *auth.Authenticator, superModerator string, inviteCode string) *Service {
	return &Service{
		repos:          repos,
		authn:          authn,
		superModerator: superModerator,
		inviteCode:     inviteCode,
	}
}

func requireOwner(caller *models.AdminAccount) error {
	if caller == nil || !caller.IsOwner {
		return apperror.Permission(MsgOwnerOnly)
	}
	return nil
}

func (s *Service) ListMessages(filter repositories.MessageFilter) ([]models.Message, error) {
	return s.repos.Messages.ListMessages(filter)
}

func (s *Service) TogglePin(id uint, pinned bool) error {
	if err := s.repos.Messages.SetPinned(id, pinned); err != nil {
		return err
	}
	logrus.Debugf("Message %d pinned=%t", id, pinned)
	return nil
}

func (s *Service) DeleteMessage(id uint) error {
	return s.repos.Messages.DeleteMessage(id)
}

func (s *Service) DeletePublicMessage(id uint) error {
	return s.repos.Messages.DeletePublic(id)
}

func (s *Service) newAdmin(username string, password string, owner bool) (*models.AdminAccount, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminAccount{
		Username:         username,
		PasswordHash:     hash,
		IsOwner:          owner,
		IsSuperModerator: auth.IsSuperModeratorName(username, s.superModerator),
	}
	if err := s.repos.Accounts.CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) CreateAdmin(caller *models.AdminAccount, username string, password string) (*models.AdminAccount, error) {
	if err := requireOwner(caller); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Validation("Username and password are required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.Validation("Password must be at least 6 characters")
	}

	admin, err := s.newAdmin(username, password, false)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Owner %s created admin %s", caller.Username, admin.Username)
	return admin, nil
}

// SelfRegisterAdmin creates a non-owner admin for anyone holding the
// configured invite code. Without a configured code it is disabled.
func (s *Service) SelfRegisterAdmin(username string, password string, inviteCode string) (*models.AdminAccount, error) {
	if s.inviteCode == "" {
		return nil, apperror.Permission("Admin self-registration is disabled")
	}

	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength {
		return nil, apperror.Validation("Username must be at least 3 characters")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.Validation("Password must be at least 6 characters")
	}
	if subtle.ConstantTimeCompare([]byte(inviteCode), []byte(s.inviteCode)) != 1 {
		return nil, apperror.Permission("Invalid invite code")
	}

	admin, err := s.newAdmin(username, password, false)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Admin %s registered with invite code", admin.Username)
	return admin, nil
}

func (s *Service) DeleteAdmin(caller *models.AdminAccount, id uint) error {
	if err := requireOwner(caller); err != nil {
		return err
	}
	if id == caller.ID {
		return apperror.SelfDelete("You cannot delete your own account")
	}

	target, err := s.repos.Accounts.GetAdmin(id)
	if err != nil {
		return err
	}
	if target.IsOwner {
		return apperror.Permission("Owner accounts cannot be deleted")
	}

	if err := s.repos.Accounts.DeleteAdmin(id); err != nil {
		return err
	}
	if err := s.authn.RevokeAccount(models.SessionAdmin, id); err != nil {
		logrus.Errorf("could not revoke sessions of deleted admin %d: %s", id, err)
	}

	logrus.Infof("Owner %s deleted admin %s", caller.Username, target.Username)
	return nil
}

func (s *Service) ListAdmins(caller *models.AdminAccount) ([]models.AdminAccount, error) {
	if err := requireOwner(caller); err != nil {
		return nil, err
	}
	return s.repos.Accounts.ListAdmins()
}

func (s *Service) ListUsers() ([]models.UserAccount, error) {
	return s.repos.Accounts.ListUsers()
}

func (s *Service) DeleteUser(id uint) error {
	err := s.repos.Transaction(func(tx *repositories.Repositories) error {
		if err := tx.Accounts.DeleteUser(id); err != nil {
			return err
		}
		return tx.Resets.DeleteForUser(id)
	})
	if err != nil {
		return err
	}

	if err := s.authn.RevokeAccount(models.SessionUser, id); err != nil {
		logrus.Errorf("could not revoke sessions of deleted user %d: %s", id, err)
	}
	return nil
}
