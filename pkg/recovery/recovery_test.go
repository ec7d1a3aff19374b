package recovery

import (
	"strings"
	"testing"
	"time"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/auth"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/freetocompute/mindboard/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenFrom(t *testing.T, link string) string {
	t.Helper()
	idx := strings.Index(link, "token=")
	require.NotEqual(t, -1, idx)
	return link[idx+len("token="):]
}

func TestRequestResetUnknownGmail(t *testing.T) {
	s := NewService(repositories.New(testutil.SetupTestDB(t)), "http://localhost:5500")

	_, err := s.RequestReset("nobody@gmail.com")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = s.RequestReset("")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestResetPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repositories.New(db)
	user := testutil.SeedUser(t, db, "alice", "pw123456", "alice@gmail.com")
	s := NewService(repos, "http://localhost:5500/")

	link, err := s.RequestReset("Alice@gmail.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "http://localhost:5500/reset-password.html?token="))

	token := tokenFrom(t, link)
	assert.Len(t, token, 64)

	assert.True(t, apperror.Is(s.ResetPassword(token, "123"), apperror.KindValidation))
	require.NoError(t, s.ResetPassword(token, "newpass1"))

	updated, err := repos.Accounts.GetUser(user.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("newpass1", updated.PasswordHash))

	// tokens are single use
	assert.True(t, apperror.Is(s.ResetPassword(token, "another1"), apperror.KindValidation))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SeedUser(t, db, "alice", "pw123456", "alice@gmail.com")
	s := NewService(repositories.New(db), "http://localhost:5500")

	issued := time.Now().UTC()
	s.now = func() time.Time { return issued }
	link, err := s.RequestReset("alice@gmail.com")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
	err = s.ResetPassword(tokenFrom(t, link), "newpass1")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestResetPasswordRejectsOverlongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repositories.New(db)
	user := testutil.SeedUser(t, db, "alice", "pw123456", "alice@gmail.com")
	s := NewService(repos, "http://localhost:5500")

	link, err := s.RequestReset("alice@gmail.com")
	require.NoError(t, err)
	token := tokenFrom(t, link)

	err = s.ResetPassword(token, strings.Repeat("a", 80))
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, auth.MsgPasswordTooLong, apperror.PublicMessage(err))

	unchanged, err := repos.Accounts.GetUser(user.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("pw123456", unchanged.PasswordHash))

	// the token survives a rejected password
	require.NoError(t, s.ResetPassword(token, "newpass1"))
}
