package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/issuetrack-api/pkg/password"
)

func TestHash_SaltedPerCall(t *testing.T) {
	first, err := password.Hash("s3cret")
	require.NoError(t, err)
	second, err := password.Hash("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same plaintext must differ")
}

func TestVerify_RoundTrip(t *testing.T) {
	digest, err := password.Hash("s3cret")
	require.NoError(t, err)

	assert.NoError(t, password.Verify("s3cret", digest))
}

func TestVerify_Mismatch(t *testing.T) {
	digest, err := password.Hash("s3cret")
	require.NoError(t, err)

	err = password.Verify("wrong", digest)
	assert.ErrorIs(t, err, password.ErrMismatch)
}

func TestVerify_GarbageDigest(t *testing.T) {
	err := password.Verify("s3cret", "not-a-bcrypt-digest")
	assert.Error(t, err)
}
