package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
)

// SeedAdmin creates the bootstrap administrator unless an account with the
// same email already exists. It reports whether an account was created.
func SeedAdmin(ctx context.Context, repo UserRepository, hasher PasswordHasher, name, email, password string, logger *slog.Logger) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		logger.Info("admin account exists, skipping seed", "email", email)
		return false, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, fmt.Errorf("checking admin account: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	now := time.Now().UTC()
	admin := User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		Role:         RoleAdmin,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("creating admin account: %w", err)
	}
	logger.Warn("admin account created", "email", email, "id", admin.ID.String())
	return true, nil
}
