package signup

import (
	"strings"
	"testing"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/freetocompute/mindboard/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Workflow, *repositories.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repositories.New(db)
	return NewWorkflow(repos, false), repos, db
}

func countPending(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.SignupRequest{}).Where("status = ?", models.SignupPending).Count(&count).Error)
	return count
}

func TestSubmitValidation(t *testing.T) {
	w, _, _ := setup(t)

	tests := []struct {
		name                      string
		username, password, gmail string
	}{
		{"missing username", "", "pw123456", "alice@gmail.com"},
		{"missing password", "alice", "", "alice@gmail.com"},
		{"missing gmail", "alice", "pw123456", ""},
		{"blank username", "   ", "pw123456", "alice@gmail.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Submit(tt.username, tt.password, tt.gmail)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
		})
	}
}

func TestSubmitCreatesOnePendingRequest(t *testing.T) {
	w, _, db := setup(t)

	request, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, models.SignupPending, request.Status)
	assert.NotEqual(t, "pw123456", request.PasswordHash)
	assert.True(t, auth.VerifyPassword("pw123456", request.PasswordHash))
	assert.Equal(t, int64(1), countPending(t, db))

	_, err = w.Submit("alice", "other123", "different@gmail.com")
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = w.Submit("bob", "other123", "alice@gmail.com")
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	assert.Equal(t, int64(1), countPending(t, db))
}

func TestSubmitRejectsExistingUser(t *testing.T) {
	w, _, db := setup(t)
	testutil.SeedUser(t, db, "alice", "pw123456", "alice@gmail.com")

	_, err := w.Submit("alice", "pw123456", "new@gmail.com")
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = w.Submit("someone", "pw123456", "ALICE@gmail.com")
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestApproveCreatesUser(t *testing.T) {
	w, repos, _ := setup(t)

	request, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)

	user, err := w.Approve(request.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@gmail.com", user.Gmail)
	assert.Equal(t, request.PasswordHash, user.PasswordHash)

	users, err := repos.Accounts.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)

	pending, err := w.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = w.Approve(request.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestApproveMissingRequest(t *testing.T) {
	w, _, _ := setup(t)

	_, err := w.Approve(42)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestApproveConflictDeclinesRequest(t *testing.T) {
	w, _, db := setup(t)

	request, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)

	// claimed by another account after the request was submitted
	testutil.SeedUser(t, db, "alice2", "pw123456", "alice@gmail.com")

	_, err = w.Approve(request.ID)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	var stored models.SignupRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.SignupDeclined, stored.Status)

	var users int64
	require.NoError(t, db.Model(&models.UserAccount{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestDeclineThenResubmit(t *testing.T) {
	w, _, db := setup(t)

	request, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)

	require.NoError(t, w.Decline(request.ID))

	var stored models.SignupRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.SignupDeclined, stored.Status)

	assert.True(t, apperror.Is(w.Decline(request.ID), apperror.KindNotFound))

	again, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, models.SignupPending, again.Status)

	var total int64
	require.NoError(t, db.Model(&models.SignupRequest{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestListPendingOldestFirst(t *testing.T) {
	w, _, _ := setup(t)

	first, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)
	second, err := w.Submit("bob", "pw123456", "bob@gmail.com")
	require.NoError(t, err)

	pending, err := w.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestVerifiedGmailGate(t *testing.T) {
	w, _, _ := setup(t)
	w.RequireVerifiedGmail = true

	_, err := w.Submit("alice", "pw123456", "alice@gmail.com")
	assert.True(t, apperror.Is(err, apperror.KindPermission))

	require.NoError(t, w.AddVerifiedGmail("Alice@Gmail.com"))
	require.NoError(t, w.AddVerifiedGmail("alice@gmail.com"))

	_, err = w.Submit("alice", "pw123456", "alice@gmail.com")
	require.NoError(t, err)

	gmails, err := w.ListVerifiedGmails()
	require.NoError(t, err)
	assert.Equal(t, []models.VerifiedGmail{{Gmail: "alice@gmail.com"}}, gmails)

	assert.True(t, apperror.Is(w.AddVerifiedGmail(" "), apperror.KindValidation))
}

func TestSubmitRejectsOverlongPassword(t *testing.T) {
	w, _, db := setup(t)

	_, err := w.Submit("alice", strings.Repeat("a", 80), "alice@gmail.com")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, auth.MsgPasswordTooLong, apperror.PublicMessage(err))
	assert.Equal(t, int64(0), countPending(t, db))
}
