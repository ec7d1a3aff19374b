package auth

import (
	"sync"
	"time"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	SessionTTL = 24 * time.Hour

	MsgInvalidCredentials = "Invalid credentials"
	MsgNotAuthenticated   = "Not authenticated"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// compareDummy spends the same bcrypt work as a real check so that an
// unknown username is not distinguishable by timing.
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = HashPassword(uuid.NewString())
	})
	VerifyPassword(password, dummyHash)
}

type Authenticator struct {
	repos    *repositories.Repositories
	rootKey  []byte
	location string
	now      func() time.Time
}

func NewAuthenticator(repos *repositories.Repositories, rootKey []byte, location string) *Authenticator {
	return &Authenticator{
		repos:    repos,
		rootKey:  rootKey,
		location: location,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (a *Authenticator) LoginAdmin(username string, password string) (*models.AdminAccount, string, error) {
	if username == "" || password == "" {
		return nil, "", apperror.Validation("Username and password are required")
	}

	admin, err := a.repos.Accounts.GetAdminByUsername(username)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			compareDummy(password)
			return nil, "", apperror.Auth(MsgInvalidCredentials)
		}
		return nil, "", err
	}
	if !VerifyPassword(password, admin.PasswordHash) {
		return nil, "", apperror.Auth(MsgInvalidCredentials)
	}

	token, err := a.openSession(models.SessionAdmin, admin.ID)
	if err != nil {
		return nil, "", err
	}

	logrus.Infof("Admin %s logged in", admin.Username)
	return admin, token, nil
}

func (a *Authenticator) LoginUser(username string, password string) (*models.UserAccount, string, error) {
	if username == "" || password == "" {
		return nil, "", apperror.Validation("Username and password are required")
	}

	user, err := a.repos.Accounts.GetUserByUsername(username)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			compareDummy(password)
			return nil, "", apperror.Auth(MsgInvalidCredentials)
		}
		return nil, "", err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, "", apperror.Auth(MsgInvalidCredentials)
	}

	token, err := a.openSession(models.SessionUser, user.ID)
	if err != nil {
		return nil, "", err
	}

	logrus.Infof("User %s signed in", user.Username)
	return user, token, nil
}

func (a *Authenticator) openSession(kind models.SessionKind, accountID uint) (string, error) {
	now := a.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := a.repos.Sessions.Create(session); err != nil {
		return "", err
	}

	token, err := MintSessionToken(a.rootKey, a.location, session.ID, session.ExpiresAt)
	if err != nil {
		logrus.Error(err)
		return "", apperror.Store(err)
	}
	return token, nil
}

// Logout revokes the session behind token. Tokens that do not verify are
// ignored so that logging out is always possible.
func (a *Authenticator) Logout(token string) error {
	if token == "" {
		return nil
	}
	id, err := VerifySessionToken(a.rootKey, token, a.now())
	if err != nil {
		logrus.Debugf("logout with unusable token: %s", err)
		return nil
	}
	return a.repos.Sessions.Revoke(id, a.now())
}

func (a *Authenticator) session(kind models.SessionKind, token string) (*models.Session, error) {
	if token == "" {
		return nil, apperror.Auth(MsgNotAuthenticated)
	}

	now := a.now()
	id, err := VerifySessionToken(a.rootKey, token, now)
	if err != nil {
		logrus.Debugf("rejected session token: %s", err)
		return nil, apperror.Auth(MsgNotAuthenticated)
	}

	session, err := a.repos.Sessions.Get(id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Auth(MsgNotAuthenticated)
		}
		return nil, err
	}
	if session.Kind != kind || !session.Active(now) {
		return nil, apperror.Auth(MsgNotAuthenticated)
	}
	return session, nil
}

// ResolveAdmin returns the admin behind token, reloaded from the store so
// that deletion and demotion take effect on the next request.
func (a *Authenticator) ResolveAdmin(token string) (*models.AdminAccount, error) {
	session, err := a.session(models.SessionAdmin, token)
	if err != nil {
		return nil, err
	}

	admin, err := a.repos.Accounts.GetAdmin(session.AccountID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Auth(MsgNotAuthenticated)
		}
		return nil, err
	}
	return admin, nil
}

func (a *Authenticator) ResolveUser(token string) (*models.UserAccount, error) {
	session, err := a.session(models.SessionUser, token)
	if err != nil {
		return nil, err
	}

	user, err := a.repos.Accounts.GetUser(session.AccountID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Auth(MsgNotAuthenticated)
		}
		return nil, err
	}
	return user, nil
}

// RevokeAccount ends every open session of an account.
func (a *Authenticator) RevokeAccount(kind models.SessionKind, accountID uint) error {
	return a.repos.Sessions.RevokeAccount(kind, accountID, a.now())
}

// PurgeSessions deletes expired and revoked sessions.
func (a *Authenticator) PurgeSessions() (int64, error) {
	return a.repos.Sessions.DeleteExpired(a.now())
}
