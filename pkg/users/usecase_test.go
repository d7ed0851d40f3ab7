package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
	"github.com/artem13815/taskverse/pkg/repository/memory"
	"github.com/artem13815/taskverse/pkg/users"
)

func seed(t *testing.T, repo auth.UserRepository, email string, role auth.Role, created time.Time) auth.Identity {
	t.Helper()
	u := auth.User{ID: uuid.New(), Name: email, Email: email, Role: role, Active: true, PasswordHash: "hash", CreatedAt: created}
	require.NoError(t, repo.Create(context.Background(), u))
	return u.Identity()
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()
	now := time.Now().UTC()
	admin := seed(t, repo, "root@example.com", auth.RoleAdmin, now)
	alice := seed(t, repo, "alice@example.com", auth.RoleUser, now.Add(time.Second))
	svc := users.NewService(repo)

	got, err := svc.SetActive(ctx, admin, alice.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = auth.NewResolver(repo, nil).Resolve(ctx, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.SetActive(ctx, alice, admin.ID, false)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.SetActive(ctx, admin, admin.ID, false)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.SetActive(ctx, admin, uuid.New(), true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()
	now := time.Now().UTC()
	admin := seed(t, repo, "root@example.com", auth.RoleAdmin, now)
	alice := seed(t, repo, "alice@example.com", auth.RoleUser, now.Add(time.Second))
	svc := users.NewService(repo)

	list, total, err := svc.List(ctx, admin, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, alice.ID, list[0].ID, "newest first")

	_, _, err = svc.List(ctx, alice, 10, 0)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
