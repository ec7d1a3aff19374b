package repositories

import (
	"testing"
	"time"

	"github.com/freetocompute/mindboard/pkg/apperror"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/freetocompute/mindboard/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdminDuplicateIsConflict(t *testing.T) {
	repos := New(testutil.SetupTestDB(t))

	require.NoError(t, repos.Accounts.CreateAdmin(&models.AdminAccount{Username: "mod", PasswordHash: "h"}))
	err := repos.Accounts.CreateAdmin(&models.AdminAccount{Username: "mod", PasswordHash: "h"})

	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestGetAdminNotFoundIsDistinctFromConflict(t *testing.T) {
	repos := New(testutil.SetupTestDB(t))

	_, err := repos.Accounts.GetAdminByUsername("ghost")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSetSuperModeratorIsCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	admin := testutil.SeedAdmin(t, db, "Shen", "secret1", false)

	require.NoError(t, repos.Accounts.SetSuperModerator("SHEN"))
	require.NoError(t, repos.Accounts.SetSuperModerator("nobody"))

	got, err := repos.Accounts.GetAdmin(admin.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSuperModerator)
}

func TestUserExistsMatchesUsernameOrGmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	testutil.SeedUser(t, db, "alice", "pw123456", "alice@gmail.com")

	exists, err := repos.Accounts.UserExists("alice", "new@gmail.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Accounts.UserExists("someone", "alice@gmail.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Accounts.UserExists("someone", "else@gmail.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteUserTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	user := testutil.SeedUser(t, db, "alice", "pw123456", "alice@gmail.com")

	require.NoError(t, repos.Accounts.DeleteUser(user.ID))
	assert.True(t, apperror.Is(repos.Accounts.DeleteUser(user.ID), apperror.KindNotFound))
}

func TestListMessagesPinnedFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	old := testutil.SeedMessage(t, db, "old", "Happy", base, false)
	pinnedOld := testutil.SeedMessage(t, db, "pinned old", "Sad", base.Add(time.Minute), true)
	recent := testutil.SeedMessage(t, db, "recent", "Happy", base.Add(2*time.Minute), false)
	pinnedRecent := testutil.SeedMessage(t, db, "pinned recent", "Curious", base.Add(3*time.Minute), true)

	newest, err := repos.Messages.ListMessages(MessageFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uint{pinnedRecent.ID, pinnedOld.ID, recent.ID, old.ID}, ids(newest))

	oldest, err := repos.Messages.ListMessages(MessageFilter{Oldest: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{pinnedOld.ID, pinnedRecent.ID, old.ID, recent.ID}, ids(oldest))
}

func TestListMessagesFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	testutil.SeedMessage(t, db, "Sunny day", "Happy", base, false)
	pinned := testutil.SeedMessage(t, db, "rainy day", "Sad", base.Add(time.Minute), true)
	testutil.SeedMessage(t, db, "coffee", "Happy", base.Add(2*time.Minute), false)

	happy, err := repos.Messages.ListMessages(MessageFilter{Mood: "Happy"})
	require.NoError(t, err)
	assert.Len(t, happy, 2)

	yes := true
	onlyPinned, err := repos.Messages.ListMessages(MessageFilter{Pinned: &yes})
	require.NoError(t, err)
	assert.Equal(t, []uint{pinned.ID}, ids(onlyPinned))

	days, err := repos.Messages.ListMessages(MessageFilter{Search: "DAY"})
	require.NoError(t, err)
	assert.Len(t, days, 2)
}

func TestSetPinnedIdempotentAndMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	message := testutil.SeedMessage(t, db, "hi", "Happy", time.Now(), false)

	require.NoError(t, repos.Messages.SetPinned(message.ID, true))
	require.NoError(t, repos.Messages.SetPinned(message.ID, true))

	got, err := repos.Messages.GetMessage(message.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPinned)

	assert.True(t, apperror.Is(repos.Messages.SetPinned(9999, true), apperror.KindNotFound))
}

func TestDeleteMessageTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	message := testutil.SeedMessage(t, db, "hi", "Happy", time.Now(), false)

	require.NoError(t, repos.Messages.DeleteMessage(message.ID))
	assert.True(t, apperror.Is(repos.Messages.DeleteMessage(message.ID), apperror.KindNotFound))
}

func TestListPublicNewestFirstWithLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := testutil.SeedPublicMessage(t, db, "first", "a", "Happy", base)
	second := testutil.SeedPublicMessage(t, db, "second", "b", "Happy", base.Add(time.Minute))
	third := testutil.SeedPublicMessage(t, db, "third", "c", "Sad", base.Add(2*time.Minute))

	all, err := repos.Messages.ListPublic(MessageFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uint{third.ID, second.ID, first.ID}, publicIDs(all))

	limited, err := repos.Messages.ListPublic(MessageFilter{Limit: 2, Oldest: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, second.ID}, publicIDs(limited))
}

func TestReactionsAndComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)
	message := testutil.SeedPublicMessage(t, db, "hello", "", "", time.Now())

	require.NoError(t, repos.Messages.AddReaction(&models.Reaction{PublicMessageID: message.ID, Reactor: "user:1", Type: models.ReactionLike}))
	require.NoError(t, repos.Messages.AddReaction(&models.Reaction{PublicMessageID: message.ID, Reactor: "user:1", Type: models.ReactionLike}))
	require.NoError(t, repos.Messages.AddReaction(&models.Reaction{PublicMessageID: message.ID, Reactor: "visitor:x", Type: models.ReactionLike}))
	require.NoError(t, repos.Messages.AddReaction(&models.Reaction{PublicMessageID: message.ID, Reactor: "visitor:x", Type: models.ReactionWow}))

	counts, err := repos.Messages.ReactionCounts([]uint{message.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[message.ID][models.ReactionLike])
	assert.Equal(t, int64(1), counts[message.ID][models.ReactionWow])

	mine, err := repos.Messages.ReactorReactions(message.ID, "visitor:x")
	require.NoError(t, err)
	assert.Equal(t, []string{models.ReactionLike, models.ReactionWow}, mine)

	require.NoError(t, repos.Messages.RemoveReaction(message.ID, "visitor:x", models.ReactionWow))
	mine, err = repos.Messages.ReactorReactions(message.ID, "visitor:x")
	require.NoError(t, err)
	assert.Equal(t, []string{models.ReactionLike}, mine)

	require.NoError(t, repos.Messages.AddComment(&models.Comment{PublicMessageID: message.ID, DisplayName: "Anonymous", Comment: "nice"}))
	commentCounts, err := repos.Messages.CommentCounts([]uint{message.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), commentCounts[message.ID])

	require.NoError(t, repos.Messages.DeletePublic(message.ID))
	comments, err := repos.Messages.ListComments(message.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.True(t, apperror.Is(repos.Messages.DeletePublic(message.ID), apperror.KindNotFound))
}

func TestSignupTransition(t *testing.T) {
	repos := New(testutil.SetupTestDB(t))

	request := &models.SignupRequest{Username: "alice", PasswordHash: "h", Gmail: "alice@gmail.com", Status: models.SignupPending}
	require.NoError(t, repos.Signups.Create(request))

	require.NoError(t, repos.Signups.Transition(request.ID, models.SignupPending, models.SignupDeclined))
	err := repos.Signups.Transition(request.ID, models.SignupPending, models.SignupApproved)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, repos.Signups.PurgeDeclined("alice", "other@gmail.com"))
	pending, err := repos.Signups.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestVerifiedGmails(t *testing.T) {
	repos := New(testutil.SetupTestDB(t))

	require.NoError(t, repos.Signups.AddVerifiedGmail("Someone@Gmail.com"))
	require.NoError(t, repos.Signups.AddVerifiedGmail("someone@gmail.com"))

	ok, err := repos.Signups.IsVerifiedGmail("someone@gmail.com")
	require.NoError(t, err)
	assert.True(t, ok)

	gmails, err := repos.Signups.ListVerifiedGmails()
	require.NoError(t, err)
	assert.Len(t, gmails, 1)
}

func TestTransactionRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := New(db)

	err := repos.Transaction(func(tx *Repositories) error {
		require.NoError(t, tx.Accounts.CreateUser(&models.UserAccount{Username: "temp", PasswordHash: "h", Gmail: "temp@gmail.com"}))
		return apperror.Conflict("stop")
	})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = repos.Accounts.GetUserByUsername("temp")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSessionsRevokeAndExpire(t *testing.T) {
	repos := New(testutil.SetupTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repos.Sessions.Create(&models.Session{ID: "a", Kind: models.SessionAdmin, AccountID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repos.Sessions.Create(&models.Session{ID: "b", Kind: models.SessionAdmin, AccountID: 1, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repos.Sessions.Create(&models.Session{ID: "c", Kind: models.SessionUser, AccountID: 1, ExpiresAt: now.Add(-time.Hour)}))

	require.NoError(t, repos.Sessions.RevokeAccount(models.SessionAdmin, 1, now))
	a, err := repos.Sessions.Get("a")
	require.NoError(t, err)
	assert.False(t, a.Active(now))

	removed, err := repos.Sessions.DeleteExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestResetTokens(t *testing.T) {
	repos := New(testutil.SetupTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repos.Resets.Create(&models.PasswordResetToken{UserID: 7, Token: "live", ExpiresAt: now.Add(30 * time.Minute)}))
	require.NoError(t, repos.Resets.Create(&models.PasswordResetToken{UserID: 7, Token: "stale", ExpiresAt: now.Add(-time.Minute)}))

	got, err := repos.Resets.FindValid("live", now)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)

	_, err = repos.Resets.FindValid("stale", now)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, repos.Resets.DeleteForUser(7))
	_, err = repos.Resets.FindValid("live", now)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func ids(messages []models.Message) []uint {
	out := make([]uint, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func publicIDs(messages []models.PublicMessage) []uint {
	out := make([]uint, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}
