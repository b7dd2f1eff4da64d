package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureKnownDigest(t *testing.T) {
	sig, err := Signature(1690000000, "uploads", "secret123")
	require.NoError(t, err)
	// folder sorts before timestamp: sha1("folder=uploads&timestamp=1690000000secret123")
	assert.Equal(t, "b8a3ec33cb9f02ed457a6d5533336e13a0cf3fd6", sig)
}

func TestSignatureWithoutFolder(t *testing.T) {
	sig, err := Signature(1690000000, "", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "27ade75e8b08c48e1a94c21d6a173b2a1b34071e", sig)
}

func TestSignatureDeterministic(t *testing.T) {
	first, err := Signature(1690000000, "uploads", "secret123")
	require.NoError(t, err)
	second, err := Signature(1690000000, "uploads", "secret123")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSignatureChangesWithInput(t *testing.T) {
	base, err := Signature(1690000000, "uploads", "secret123")
	require.NoError(t, err)

	other, err := Signature(1690000001, "uploads", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	other, err = Signature(1690000000, "avatars", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	other, err = Signature(1690000000, "uploads", "othersecret")
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestSignatureMissingSecret(t *testing.T) {
	_, err := Signature(1690000000, "uploads", "")
	assert.ErrorIs(t, err, ErrSecretUnset)
}
