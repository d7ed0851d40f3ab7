package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/taskverse/pkg/apperr"
)

// PasswordHasher is the credential verifier contract: Verify never errors,
// it only answers whether the secret matches.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, storedHash string) bool
}

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type AuthResult struct {
	User  Identity
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, now: time.Now}
}

// Register always creates a regular user; roles are never taken from input.
func (s *authService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return AuthResult{}, apperr.Validation("name, email and password are required")
	}

	// If user exists, fail fast (best-effort check; the store enforces uniqueness)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return AuthResult{}, err
	}

	user, err := s.newUser(name, email, password, RoleUser)
	if err != nil {
		return AuthResult{}, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user.Identity(), Token: token}, nil
}

// Login answers ErrInvalidCredentials for an unknown email and a wrong
// password alike. Deactivation is only reported after the password matched.
func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !user.Active {
		return AuthResult{}, ErrAccountDisabled
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user.Identity(), Token: token}, nil
}

func (s *authService) newUser(name, email, password string, role Role) (User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}
	now := s.now().UTC()
	return User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         role,
		Active:       true,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
