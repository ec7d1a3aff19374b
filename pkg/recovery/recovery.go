// Package recovery issues and redeems password reset tokens for user accounts.
package recovery

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/sirupsen/logrus"
)

const (
	TokenTTL   = 30 * time.Minute
	tokenBytes = 32

	MinPasswordLength = 6
)

type Service struct {
	repos       *repositories.Repositories
	frontendURL string
	now         func() time.Time
}

func NewService(repos *repositories.Repositories, frontendURL string) *Service {
	return &Service{
		repos:       repos,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RequestReset creates a reset token for the user owning gmail and returns
// the reset link. Delivery of the link is left to the operator.
func (s *Service) RequestReset(gmail string) (string, error) {
	gmail = strings.ToLower(strings.TrimSpace(gmail))
	if gmail == "" {
		return "", apperror.Validation("Gmail is required")
	}

	user, err := s.repos.Accounts.GetUserByGmail(gmail)
	if err != nil {
		return "", err
	}

	token, err := newToken()
	if err != nil {
		logrus.Error(err)
		return "", apperror.Store(err)
	}

	reset := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(TokenTTL),
	}
	if err := s.repos.Resets.Create(reset); err != nil {
		return "", err
	}

	link := s.frontendURL + "/reset-password.html?token=" + token
	logrus.Infof("Password reset requested for %s: %s", user.Username, link)
	return link, nil
}

func (s *Service) ResetPassword(token string, password string) error {
	if token == "" || password == "" {
		return apperror.Validation("Token and new password are required")
	}
	if len(password) < MinPasswordLength {
		return apperror.Validation("Password must be at least 6 characters")
	}

	reset, err := s.repos.Resets.FindValid(token, s.now())
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.Validation("Invalid or expired token")
		}
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return s.repos.Transaction(func(tx *repositories.Repositories) error {
		if err := tx.Accounts.UpdateUserPassword(reset.UserID, hash); err != nil {
			return err
		}
		return tx.Resets.DeleteForUser(reset.UserID)
	})
}
