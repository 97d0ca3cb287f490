package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/issuetrack-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newCodec(t *testing.T, ttl time.Duration) *jwt.Codec {
	t.Helper()
	codec, err := jwt.New(jwt.Options{
		Secret:    testSecret,
		Algorithm: "HS256",
		Issuer:    "issuetrack-test",
		TTL:       ttl,
	})
	require.NoError(t, err)
	return codec
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := jwt.New(jwt.Options{Algorithm: "HS256"})
	assert.Error(t, err)
}

func TestNew_UnsupportedAlgorithm(t *testing.T) {
	_, err := jwt.New(jwt.Options{Secret: testSecret, Algorithm: "RS256"})
	assert.Error(t, err)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	codec := newCodec(t, time.Hour)
	now := time.Now()

	token, err := codec.Issue("alice", "Alice Cooper", true, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token, now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "Alice Cooper", claims.Fullname)
	assert.True(t, claims.Active)
	assert.NotEmpty(t, claims.ID, "token must carry a jti")
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestVerify_Expired(t *testing.T) {
	codec := newCodec(t, time.Hour)
	now := time.Now()

	token, err := codec.Issue("alice", "", true, now)
	require.NoError(t, err)

	_, err = codec.Verify(token, now.Add(time.Hour+time.Second))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired, "past the TTL the failure kind must be expired, nothing else")
}

func TestVerify_WrongSecret(t *testing.T) {
	codec := newCodec(t, time.Hour)
	now := time.Now()

	token, err := codec.Issue("alice", "", true, now)
	require.NoError(t, err)

	other, err := jwt.New(jwt.Options{Secret: "a-completely-different-secret", TTL: time.Hour})
	require.NoError(t, err)

	_, err = other.Verify(token, now)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	codec := newCodec(t, time.Hour)

	_, err := codec.Verify("token.invalid.here", time.Now())
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestVerify_Tampered(t *testing.T) {
	codec := newCodec(t, time.Hour)
	now := time.Now()

	token, err := codec.Issue("alice", "", true, now)
	require.NoError(t, err)

	tampered := token + "x"
	_, err = codec.Verify(tampered, now)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
