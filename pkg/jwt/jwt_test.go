package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taexpense/auth-service/pkg/jwt"
)

const testSecret = "test-secret-32-chars-long-123456"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.New(nil, time.Hour)
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("defaults ttl to one hour", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.New([]byte(testSecret), 0)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.TTL())
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromConfig(jwt.Config{Secret: testSecret, ExpiresMinutes: 15})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, svc.TTL())

	cfg := jwt.Config{Secret: jwt.InsecureDefaultSecret}
	assert.True(t, cfg.IsInsecureDefault())
}

func TestService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue("42", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", ident.Subject)
	assert.Equal(t, "a@x.com", ident.Email)
}

func TestService_Issue_MissingSubject(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	_, err = svc.Issue("", "a@x.com")
	assert.ErrorIs(t, err, jwt.ErrMissingSubject)
}

func TestService_Verify_WrongKey(t *testing.T) {
	t.Parallel()

	issuer, err := jwt.New([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	verifier, err := jwt.New([]byte("another-secret-key-entirely-1234"), time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("42", "a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_Verify_Expired(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New([]byte(testSecret), time.Nanosecond)
	require.NoError(t, err)

	token, err := svc.Issue("42", "a@x.com")
	require.NoError(t, err)

	// exp is truncated to whole seconds, so cross a second boundary.
	time.Sleep(1100 * time.Millisecond)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestService_Verify_Garbage(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken, "token %q", tok)
	}
}

func TestService_TokensDifferAcrossIssuance(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	t1, err := svc.Issue("42", "a@x.com")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // iat has second resolution

	t2, err := svc.Issue("42", "a@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)

	for _, tok := range []string{t1, t2} {
		ident, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, "42", ident.Subject)
	}
}
