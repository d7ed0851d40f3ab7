package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/logger"
	"github.com/artem13815/taskverse/pkg/repository/memory"
	"github.com/artem13815/taskverse/pkg/security/jwt"
	"github.com/artem13815/taskverse/pkg/security/password"
)

type fixture struct {
	users    *memory.UserRepository
	tokens   *jwt.Service
	hasher   *password.Hasher
	auth     auth.AuthUseCase
	resolver *auth.Resolver
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  memory.NewStore().Users(),
		hasher: password.NewHasher(bcrypt.MinCost),
		now:    time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
	f.tokens = jwt.NewService("secret", "taskverse", time.Hour, jwt.WithClock(func() time.Time { return f.now }))
	f.auth = auth.NewAuthService(f.users, f.hasher, f.tokens)
	f.resolver = auth.NewResolver(f.users, f.tokens)
	return f
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, " Alice ", "  Alice@Example.COM ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, auth.RoleUser, res.User.Role)
	assert.True(t, res.User.Active)
	assert.NotEmpty(t, res.Token)

	stored, err := f.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, password.Verify("hunter22", stored.PasswordHash))

	_, err = f.auth.Register(ctx, "Alice again", "ALICE@example.com", "x")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.auth.Register(ctx, "", "bob@example.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.auth.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	res, err := f.auth.Login(ctx, "ALICE@example.com", "hunter22")
	require.NoError(t, err)
	id, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id)

	_, errWrong := f.auth.Login(ctx, "alice@example.com", "nope")
	_, errUnknown := f.auth.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())

	require.NoError(t, f.users.SetActive(ctx, reg.User.ID, false))
	_, err = f.auth.Login(ctx, "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	_, err = f.auth.Login(ctx, "alice@example.com", "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "deactivation is not revealed without the password")
}

func TestVerifyAndResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.auth.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	identity, err := f.resolver.VerifyAndResolve(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User, identity)
}

func TestVerifyAndResolve_DeactivationIsImmediate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.auth.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = f.resolver.VerifyAndResolve(ctx, reg.Token)
	require.NoError(t, err)

	require.NoError(t, f.users.SetActive(ctx, reg.User.ID, false))

	_, tokenErr := f.tokens.Verify(reg.Token)
	require.NoError(t, tokenErr, "token itself is still valid")

	_, err = f.resolver.VerifyAndResolve(ctx, reg.Token)
	assert.ErrorIs(t, err, auth.ErrIdentityInactive)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	require.NoError(t, f.users.SetActive(ctx, reg.User.ID, true))
	_, err = f.resolver.VerifyAndResolve(ctx, reg.Token)
	assert.NoError(t, err)
}

func TestVerifyAndResolve_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ghost, err := f.tokens.Issue(uuid.New())
	require.NoError(t, err)
	_, err = f.resolver.VerifyAndResolve(ctx, ghost)
	assert.ErrorIs(t, err, auth.ErrIdentityUnknown)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	reg, err := f.auth.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour + time.Second)
	_, err = f.resolver.VerifyAndResolve(ctx, reg.Token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

type brokenUsers struct{ auth.UserRepository }

var errOutage = errors.New("store unavailable")

func (brokenUsers) GetByID(context.Context, uuid.UUID) (auth.User, error) {
	return auth.User{}, errOutage
}

func TestResolve_StoreOutageIsNotUnauthenticated(t *testing.T) {
	f := newFixture(t)
	r := auth.NewResolver(brokenUsers{}, f.tokens)

	_, err := r.Resolve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errOutage)
	assert.NotErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.auth.Register(ctx, "Bob", "bob@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, f.users.SetActive(ctx, reg.User.ID, false))

	got, err := f.resolver.Lookup(ctx, reg.User.ID)
	require.NoError(t, err, "inactive accounts still exist")
	assert.False(t, got.Active)

	_, err = f.resolver.Lookup(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolve_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.auth.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.resolver.VerifyAndResolve(ctx, reg.Token)
			assert.NoError(t, err)
			assert.Equal(t, reg.User.ID, got.ID)
		}()
	}
	wg.Wait()
}

func TestSeedAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	log := logger.Discard()

	created, err := auth.SeedAdmin(ctx, f.users, f.hasher, "", "Root@Example.com", "toor", log)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := f.users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrator", admin.Name)

	created, err = auth.SeedAdmin(ctx, f.users, f.hasher, "", "root@example.com", "toor", log)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = auth.SeedAdmin(ctx, f.users, f.hasher, "", "", "", log)
	require.NoError(t, err)
	assert.False(t, created)
}
