package auth

import (
	"strings"

	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/sirupsen/logrus"
)

// EnsureOwner creates the bootstrap owner when no admin exists yet and
// grants the super-moderator flag to the configured username.
func EnsureOwner(repos *repositories.Repositories, username string, password string, superModerator string) error {
	count, err := repos.Accounts.CountAdmins()
	if err != nil {
		return err
	}

	if count == 0 {
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}

		owner := &models.AdminAccount{
			Username:         username,
			PasswordHash:     hash,
			IsOwner:          true,
			IsSuperModerator: IsSuperModeratorName(username, superModerator),
		}
		if err := repos.Accounts.CreateAdmin(owner); err != nil {
			return err
		}
		logrus.Warnf("Created bootstrap owner account %q, change its password", username)
	}

	if superModerator != "" {
		return repos.Accounts.SetSuperModerator(superModerator)
	}
	return nil
}

func IsSuperModeratorName(username string, superModerator string) bool {
	return superModerator != "" && strings.EqualFold(username, superModerator)
}
