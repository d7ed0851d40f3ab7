package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/taskverse/pkg/apperr"
	"github.com/artem13815/taskverse/pkg/auth"
)

const testSecret = "test-secret-key-for-jwt-signing"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	clock := newClock()
	svc := NewService(testSecret, "taskverse", time.Hour, WithClock(clock.Now))

	for i := 0; i < 5; i++ {
		id := uuid.New()
		token, err := svc.Issue(id)
		require.NoError(t, err)

		got, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	clock := newClock()
	svc := NewService(testSecret, "taskverse", time.Hour, WithClock(clock.Now))
	id := uuid.New()
	token, err := svc.Issue(id)
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Second)
	_, err = svc.Verify(token)
	require.NoError(t, err, "still valid just before expiry")

	clock.Advance(2 * time.Second)
	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired, "cause kept for internal logs")
}

func TestVerify_Rejections(t *testing.T) {
	clock := newClock()
	svc := NewService(testSecret, "taskverse", time.Hour, WithClock(clock.Now))
	good, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	signWith := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{
		Issuer:    "taskverse",
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(clock.Now()),
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}
	noExp := valid
	noExp.ExpiresAt = nil
	badSubject := valid
	badSubject.Subject = "alice"
	otherIssuer := valid
	otherIssuer.Issuer = "someone-else"

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"tampered":       good[:len(good)-2] + flip(good[len(good)-2:]),
		"wrong secret":   signWith(jwt.SigningMethodHS256, []byte("other-secret"), valid),
		"other hmac alg": signWith(jwt.SigningMethodHS512, []byte(testSecret), valid),
		"alg none":       signWith(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid),
		"no expiry":      signWith(jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"bad subject":    signWith(jwt.SigningMethodHS256, []byte(testSecret), badSubject),
		"other issuer":   signWith(jwt.SigningMethodHS256, []byte(testSecret), otherIssuer),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			id, err := svc.Verify(token)
			assert.ErrorIs(t, err, auth.ErrTokenInvalid)
			assert.Equal(t, uuid.Nil, id)
		})
	}
}

func TestVerify_SecretRotationInvalidatesTokens(t *testing.T) {
	old := NewService("old-secret", "taskverse", time.Hour)
	token, err := old.Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewService("new-secret", "taskverse", time.Hour).Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerify_ExpiredAndForgedLookAlike(t *testing.T) {
	clock := newClock()
	svc := NewService(testSecret, "taskverse", time.Minute, WithClock(clock.Now))
	expired, err := svc.Issue(uuid.New())
	require.NoError(t, err)
	clock.Advance(time.Hour)

	_, errExpired := svc.Verify(expired)
	_, errForged := svc.Verify(sign(t, "other-secret", clock.Now()))

	assert.ErrorIs(t, errExpired, auth.ErrTokenInvalid)
	assert.ErrorIs(t, errForged, auth.ErrTokenInvalid)
	assert.Equal(t, "token_expired", failureReason(errExpired))
	assert.Equal(t, "token_invalid", failureReason(errForged))
}

func sign(t *testing.T, secret string, now time.Time) string {
	t.Helper()
	s, err := NewService(secret, "taskverse", time.Hour, WithClock(func() time.Time { return now })).Issue(uuid.New())
	require.NoError(t, err)
	return s
}

func flip(s string) string {
	if strings.HasPrefix(s, "A") {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}
