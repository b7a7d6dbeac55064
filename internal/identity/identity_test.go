package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"starstream/internal/kv"
	"starstream/internal/media"
	"starstream/internal/notify"
)

func newTestContext(t *testing.T, store kv.Store, opts ...Option) (*Context, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	opts = append([]Option{WithDelay(0), WithHashCost(bcrypt.MinCost), WithNotifier(rec)}, opts...)
	c, err := New(context.Background(), kv.NewRepository(store), opts...)
	require.NoError(t, err)
	return c, rec
}

func TestStartsAnonymous(t *testing.T) {
	c, _ := newTestContext(t, kv.NewMemory())
	assert.Nil(t, c.Current())
}

func TestRegisterSignsIn(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, rec := newTestContext(t, store)

	res, err := c.Register(ctx, "sara", "sara@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, RouteHome, res.Redirect)
	assert.Equal(t, "sara", res.Identity.Username)
	assert.NotEmpty(t, res.Identity.ID)

	cur := c.Current()
	require.NotNil(t, cur)
	assert.Equal(t, res.Identity, *cur)

	last, _ := rec.Last()
	assert.Equal(t, notify.Success, last.Severity)

	accounts, err := kv.Load[[]media.Account](ctx, kv.NewRepository(store), UsersKey)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.NotEqual(t, "secret1", accounts[0].PasswordHash)
	assert.Empty(t, accounts[0].Password, "plaintext must not be stored")
}

func TestBootsFromPersistedPointer(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, _ := newTestContext(t, store)

	res, err := c.Register(ctx, "omar", "omar@example.com", "secret1")
	require.NoError(t, err)

	again, _ := newTestContext(t, store)
	cur := again.Current()
	require.NotNil(t, cur)
	assert.Equal(t, res.Identity.ID, cur.ID)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	c, rec := newTestContext(t, kv.NewMemory())

	reg, err := c.Register(ctx, "lina", "lina@example.com", "secret1")
	require.NoError(t, err)
	_, err = c.Logout(ctx)
	require.NoError(t, err)
	require.Nil(t, c.Current())

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"wrong password", "lina@example.com", "secret2", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "secret1", ErrInvalidCredentials},
		{"email is case sensitive", "LINA@example.com", "secret1", ErrInvalidCredentials},
		{"correct", "lina@example.com", "secret1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.Drain()
			res, err := c.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Nil(t, c.Current())
				last, _ := rec.Last()
				assert.Equal(t, notify.Error, last.Severity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, reg.Identity, res.Identity)
			assert.Equal(t, RouteHome, res.Redirect)
			require.NotNil(t, c.Current())
		})
	}
}

func TestRegisterDuplicateEmailLeavesUsersUntouched(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c, _ := newTestContext(t, store)

	_, err := c.Register(ctx, "first", "dup@example.com", "secret1")
	require.NoError(t, err)
	before, err := store.Get(ctx, UsersKey)
	require.NoError(t, err)

	_, err = c.Register(ctx, "second", "dup@example.com", "other-secret")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	after, err := store.Get(ctx, UsersKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegisterValidation(t *testing.T) {
	c, _ := newTestContext(t, kv.NewMemory())

	tests := []struct {
		name, username, email, password string
	}{
		{"short username", "ab", "a@example.com", "secret1"},
		{"bad email", "abc", "not-an-email", "secret1"},
		{"display name email", "abc", "Bob <bob@example.com>", "secret1"},
		{"short password", "abc", "a@example.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, c.Current())
		})
	}
}

func TestLogoutKeepsUserData(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := kv.NewRepository(store)
	c, _ := newTestContext(t, store)

	res, err := c.Register(ctx, "nour", "nour@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, kv.Save(ctx, repo, "watch_progress_"+res.Identity.ID, []int{1}))

	route, err := c.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, RouteHome, route)
	assert.Nil(t, c.Current())

	_, err = store.Get(ctx, CurrentKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
	_, err = store.Get(ctx, "watch_progress_"+res.Identity.ID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, UsersKey)
	assert.NoError(t, err)

	// Logging out twice is harmless.
	_, err = c.Logout(ctx)
	assert.NoError(t, err)
}

func TestLegacyPlaintextAccountIsUpgraded(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := kv.NewRepository(store)
	require.NoError(t, kv.Save(ctx, repo, UsersKey, []media.Account{{
		ID:       "1700000000000",
		Username: "legacy",
		Email:    "legacy@example.com",
		Password: "plain-pass",
	}}))

	c, _ := newTestContext(t, store)

	_, err := c.Login(ctx, "legacy@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := c.Login(ctx, "legacy@example.com", "plain-pass")
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", res.Identity.ID)

	accounts, err := kv.Load[[]media.Account](ctx, repo, UsersKey)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Empty(t, accounts[0].Password)
	assert.NotEmpty(t, accounts[0].PasswordHash)

	_, err = c.Logout(ctx)
	require.NoError(t, err)
	_, err = c.Login(ctx, "legacy@example.com", "plain-pass")
	assert.NoError(t, err, "hashed password still verifies")
}

func TestDelayHonorsCancellation(t *testing.T) {
	c, _ := newTestContext(t, kv.NewMemory(), WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Register(ctx, "slow", "slow@example.com", "secret1")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, c.Current())
}

func TestDelayElapses(t *testing.T) {
	c, _ := newTestContext(t, kv.NewMemory(), WithDelay(20*time.Millisecond))

	start := time.Now()
	_, err := c.Register(context.Background(), "wait", "wait@example.com", "secret1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
