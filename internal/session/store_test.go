package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"gymhub/internal/adapters/storage"
	"gymhub/internal/adapters/storage/directory"
	"gymhub/internal/adapters/storage/snapshot"
	"gymhub/internal/domain/user"
	"gymhub/internal/session"
)

type fixture struct {
	dir   *directory.SQLiteStore
	snaps *snapshot.SQLiteStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return fixture{
		dir:   directory.NewSQLiteStore(db),
		snaps: snapshot.NewSQLiteStore(db),
	}
}

func (f fixture) newStore() *session.Store {
	return session.New(f.dir, f.snaps)
}

func TestStore_SignupThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	created, err := store.Signup(ctx, session.SignupInput{
		Email:    "jane@ironworks.nz",
		Name:     "Jane Doe",
		Password: "a sturdy passphrase",
		Role:     user.RoleCustomer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "JD", created.Avatar)
	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())

	// Fresh store, same directory: login works
	other := f.newStore()
	got, err := other.Login(ctx, "jane@ironworks.nz", "a sturdy passphrase")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, other.IsAuthenticated())
}

func TestStore_Signup_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	_, err := store.Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "A", Password: "a sturdy passphrase", Role: user.RoleVendor})
	require.NoError(t, err)

	_, err = f.newStore().Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "B", Password: "a sturdy passphrase", Role: user.RoleVendor})
	assert.ErrorIs(t, err, session.ErrEmailAlreadyExists)
}

func TestStore_Signup_GymOwnerStartsUnapproved(t *testing.T) {
	f := newFixture(t)
	store := f.newStore()
	created, err := store.Signup(context.Background(), session.SignupInput{
		Email: "owner@x.nz", Name: "Owner", Password: "a sturdy passphrase", Role: user.RoleGymOwner,
	})
	require.NoError(t, err)
	assert.Empty(t, created.ApprovalStatus, "approval status must stay unset until gym details are submitted")
}

func TestStore_Login_FailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	first, err := store.Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "A", Password: "a sturdy passphrase", Role: user.RoleCustomer})
	require.NoError(t, err)

	// Unknown email
	_, err = store.Login(ctx, "nobody@x.nz", "whatever whatever")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)

	// Wrong password
	_, err = store.Login(ctx, "a@x.nz", "wrong passphrase")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)

	cur, ok := store.Current()
	require.True(t, ok, "failed login must not clear the session")
	assert.Equal(t, first.ID, cur.ID)
}

func TestStore_Login_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.newStore().Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "A", Password: "a sturdy passphrase", Role: user.RoleCustomer})
	require.NoError(t, err)

	store := f.newStore()
	for i := 0; i < 5; i++ {
		_, err := store.Login(ctx, "a@x.nz", "wrong passphrase")
		assert.ErrorIs(t, err, session.ErrInvalidCredentials)
	}
	_, err = store.Login(ctx, "a@x.nz", "a sturdy passphrase")
	assert.ErrorIs(t, err, session.ErrAccountLocked)
}

func TestStore_RestoreAfterLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	created, err := store.Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "A", Password: "a sturdy passphrase", Role: user.RoleCustomer})
	require.NoError(t, err)

	// Simulate a reload: new store restores from the persisted snapshot
	reloaded := f.newStore()
	assert.True(t, reloaded.IsLoading())
	reloaded.Restore(ctx, created.ID)
	assert.False(t, reloaded.IsLoading())

	cur, ok := reloaded.Current()
	require.True(t, ok, "restore must rebuild the session without re-authenticating")
	assert.Equal(t, created.ID, cur.ID)
	assert.Equal(t, user.RoleCustomer, cur.Role)
	assert.Nil(t, cur.Gym, "snapshot must not carry gym details")
}

func TestStore_Restore_MalformedSnapshotMeansNoSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.snaps.Put(ctx, "u1", snapshot.NamespaceSession, []byte("{not json")))

	store := f.newStore()
	store.Restore(ctx, "u1")
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())

	// Invalid role is also treated as no session
	require.NoError(t, f.snaps.Put(ctx, "u2", snapshot.NamespaceSession, []byte(`{"id":"u2","email":"a@x.nz","role":"superadmin"}`)))
	store2 := f.newStore()
	store2.Restore(ctx, "u2")
	assert.False(t, store2.IsAuthenticated())
}

func TestStore_LogoutThenRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	created, err := store.Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "A", Password: "a sturdy passphrase", Role: user.RoleCustomer})
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	assert.False(t, store.IsAuthenticated())
	_, ok := store.Current()
	assert.False(t, ok, "no residual user after logout")

	// Idempotent
	require.NoError(t, store.Logout(ctx))

	// Reload after logout yields no session: the snapshot is gone
	reloaded := f.newStore()
	reloaded.Restore(ctx, created.ID)
	assert.False(t, reloaded.IsAuthenticated())
}

func TestStore_SubmitGymDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	created, err := store.Signup(ctx, session.SignupInput{Email: "o@x.nz", Name: "O", Password: "a sturdy passphrase", Role: user.RoleGymOwner})
	require.NoError(t, err)

	err = store.SubmitGymDetails(ctx, user.GymDetails{Name: "Ironworks", Location: "Wellington"})
	require.NoError(t, err)

	cur, _ := store.Current()
	assert.Equal(t, user.ApprovalPending, cur.ApprovalStatus)

	// Durable: the directory record and the snapshot both carry pending
	stored, err := f.dir.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ApprovalPending, stored.ApprovalStatus)

	reloaded := f.newStore()
	reloaded.Restore(ctx, created.ID)
	got, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, user.ApprovalPending, got.ApprovalStatus)
}

func TestStore_SubmitGymDetails_RequiresLoginAndRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	err := store.SubmitGymDetails(ctx, user.GymDetails{Name: "G", Location: "L"})
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	_, err = store.Signup(ctx, session.SignupInput{Email: "c@x.nz", Name: "C", Password: "a sturdy passphrase", Role: user.RoleCustomer})
	require.NoError(t, err)
	err = store.SubmitGymDetails(ctx, user.GymDetails{Name: "G", Location: "L"})
	assert.ErrorIs(t, err, user.ErrNotGymOwner)
}

func TestStore_Refresh_PicksUpApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	created, err := store.Signup(ctx, session.SignupInput{Email: "o@x.nz", Name: "O", Password: "a sturdy passphrase", Role: user.RoleGymOwner})
	require.NoError(t, err)
	require.NoError(t, store.SubmitGymDetails(ctx, user.GymDetails{Name: "G", Location: "L"}))

	// Admin approves out of band
	stored, err := f.dir.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, stored.DecideApproval(true))
	require.NoError(t, f.dir.Save(ctx, stored))

	require.NoError(t, store.Refresh(ctx))
	cur, _ := store.Current()
	assert.Equal(t, user.ApprovalApproved, cur.ApprovalStatus)
}

func TestStore_Subscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	store := f.newStore()
	calls := 0
	unsubscribe := store.Subscribe(func() { calls++ })

	_, err := store.Signup(ctx, session.SignupInput{Email: "a@x.nz", Name: "A", Password: "a sturdy passphrase", Role: user.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	require.NoError(t, store.Logout(ctx))
	assert.Equal(t, 2, calls)

	unsubscribe()
	_, err = store.Login(ctx, "a@x.nz", "a sturdy passphrase")
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "unsubscribed listener must not fire")
}
