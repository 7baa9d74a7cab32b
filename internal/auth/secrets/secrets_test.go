package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registrar/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, Verify("s3cret-pass", hash))
	assert.ErrorIs(t, Verify("wrong", hash), ErrMismatch)
}

func TestHashRejectsEmptyAndOversized(t *testing.T) {
	_, err := Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = Hash(strings.Repeat("x", 100))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestVerifyMalformedHash(t *testing.T) {
	err := Verify("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestGenerateIsRandom(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
