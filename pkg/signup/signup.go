// Package signup implements the review queue that turns signup requests
// into user accounts.
package signup

import (
	"strings"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/sirupsen/logrus"
)

const MsgAlreadyTaken = "Username or Gmail already exists"

type Workflow struct {
	repos *repositories.Repositories
	// RequireVerifiedGmail only admits gmail addresses on the allow-list.
	RequireVerifiedGmail bool
}

func NewWorkflow(repos *repositories.Repositories, requireVerifiedGmail bool) *Workflow {
	return &Workflow{repos: repos, RequireVerifiedGmail: requireVerifiedGmail}
}

func (w *Workflow) Submit(username string, password string, gmail string) (*models.SignupRequest, error) {
	username = strings.TrimSpace(username)
	gmail = strings.ToLower(strings.TrimSpace(gmail))
	if username == "" || password == "" || gmail == "" {
		return nil, apperror.Validation("Username, password and gmail are required")
	}

	taken, err := w.repos.Accounts.UserExists(username, gmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict(MsgAlreadyTaken)
	}

	pending, err := w.repos.Signups.PendingExists(username, gmail)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.Conflict("A sign up request for this username or gmail is already pending approval.")
	}

	if w.RequireVerifiedGmail {
		verified, err := w.repos.Signups.IsVerifiedGmail(gmail)
		if err != nil {
			return nil, err
		}
		if !verified {
			return nil, apperror.Permission("This gmail is not on the list of verified addresses")
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	request := &models.SignupRequest{
		Username:     username,
		PasswordHash: hash,
		Gmail:        gmail,
		Status:       models.SignupPending,
	}
	err = w.repos.Transaction(func(tx *repositories.Repositories) error {
		if err := tx.Signups.PurgeDeclined(username, gmail); err != nil {
			return err
		}
		return tx.Signups.Create(request)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("New signup request %d for %s", request.ID, username)
	return request, nil
}

// Approve promotes a pending request to a UserAccount. When the username or
// gmail was claimed in the meantime the request is declined instead.
func (w *Workflow) Approve(id uint) (*models.UserAccount, error) {
	var user *models.UserAccount
	err := w.repos.Transaction(func(tx *repositories.Repositories) error {
		request, err := tx.Signups.GetPending(id)
		if err != nil {
			return err
		}

		taken, err := tx.Accounts.UserExists(request.Username, request.Gmail)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Conflict(MsgAlreadyTaken)
		}

		user = &models.UserAccount{
			Username:     request.Username,
			PasswordHash: request.PasswordHash,
			Gmail:        request.Gmail,
		}
		if err := tx.Accounts.CreateUser(user); err != nil {
			return err
		}
		return tx.Signups.Transition(id, models.SignupPending, models.SignupApproved)
	})

	if apperror.Is(err, apperror.KindConflict) {
		if declineErr := w.repos.Signups.Transition(id, models.SignupPending, models.SignupDeclined); declineErr != nil {
			logrus.Errorf("could not decline conflicting signup request %d: %s", id, declineErr)
		} else {
			logrus.Infof("Signup request %d declined, username or gmail already taken", id)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	logrus.Infof("Signup request %d approved, created user %s", id, user.Username)
	return user, nil
}

func (w *Workflow) Decline(id uint) error {
	if err := w.repos.Signups.Transition(id, models.SignupPending, models.SignupDeclined); err != nil {
		return err
	}
	logrus.Infof("Signup request %d declined", id)
	return nil
}

func (w *Workflow) ListPending() ([]models.SignupRequest, error) {
	return w.repos.Signups.ListPending()
}

func (w *Workflow) AddVerifiedGmail(gmail string) error {
	gmail = strings.TrimSpace(gmail)
	if gmail == "" {
		return apperror.Validation("Gmail is required")
	}
	return w.repos.Signups.AddVerifiedGmail(gmail)
}

func (w *Workflow) ListVerifiedGmails() ([]models.VerifiedGmail, error) {
	return w.repos.Signups.ListVerifiedGmails()
}
