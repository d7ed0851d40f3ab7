package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/taskverse/pkg/apperr"
)

// MaxLength is the bcrypt input limit in bytes.
const MaxLength = 72

// Hash errors for bad input unwrap to apperr.ErrValidation.
var (
	ErrEmpty   = apperr.Validation("password is required")
	ErrTooLong = apperr.Validation("password cannot exceed 72 bytes")
)

// Hasher produces and checks salted one-way hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a bcrypt hasher. Out-of-range costs fall back to
// bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Verify(plain, storedHash string) bool {
	return Verify(plain, storedHash)
}

// Verify reports whether plain matches storedHash. A wrong secret and a
// corrupt hash both yield false; it never panics. bcrypt compares the
// derived keys in constant time.
func Verify(plain, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
