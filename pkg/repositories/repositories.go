package repositories

import (
	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/database"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repositories bundles every repository over one database handle so that a
// workflow can run several of them inside a single transaction.
type Repositories struct {
	db       *gorm.DB
	Accounts *AccountRepository
	Signups  *SignupRepository
	Messages *MessageRepository
	Sessions *SessionRepository
	Resets   *ResetRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:       db,
		Accounts: NewAccountRepository(db),
		Signups:  NewSignupRepository(db),
		Messages: NewMessageRepository(db),
		Sessions: NewSessionRepository(db),
		Resets:   NewResetRepository(db),
	}
}

// Transaction runs fn against repositories bound to one transaction. Any
// error returned by fn rolls the transaction back and is returned unchanged.
func (r *Repositories) Transaction(fn func(tx *Repositories) error) error {
	var fnErr error
	err := r.db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(New(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return apperror.Store(err)
}

// findOne loads the first row matching the query into dest, reporting
// NotFound with msg when there is none.
func findOne(query *gorm.DB, dest interface{}, msg string) error {
	db := query.Limit(1).Find(dest)
	if _, ok := database.CheckDBForErrorOrNoRows(db); ok {
		return nil
	}
	if db.Error != nil {
		return apperror.Store(db.Error)
	}
	return apperror.NotFound(msg)
}

// createErr maps a failed insert to Conflict or Store.
func createErr(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if database.IsDuplicate(err) {
		logrus.Debugf("unique constraint hit: %s", err)
		return apperror.Conflict(conflictMsg)
	}
	logrus.Error(err)
	return apperror.Store(err)
}

// deleteErr maps the result of a delete to NotFound when nothing was removed.
func deleteErr(db *gorm.DB, msg string) error {
	if db.Error != nil {
		logrus.Error(db.Error)
		return apperror.Store(db.Error)
	}
	if db.RowsAffected == 0 {
		return apperror.NotFound(msg)
	}
	return nil
}
