package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveSealKey([]byte("device-secret"), []byte("salt"))
	require.Len(t, key, 32)

	sealed, err := Seal([]byte("bearer-token-value"), key)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("bearer-token-value"), sealed)

	plain, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("bearer-token-value"), plain)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := DeriveSealKey([]byte("device-secret"), []byte("salt"))
	other := DeriveSealKey([]byte("other-secret"), []byte("salt"))

	sealed, err := Seal([]byte("token"), key)
	require.NoError(t, err)

	_, err = Open(sealed, other)
	assert.Error(t, err)
}

func TestOpen_TooShort(t *testing.T) {
	key := DeriveSealKey([]byte("s"), []byte("salt"))
	_, err := Open([]byte("short"), key)
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestDeriveSealKey_Deterministic(t *testing.T) {
	a := DeriveSealKey([]byte("x"), []byte("salt"))
	b := DeriveSealKey([]byte("x"), []byte("salt"))
	assert.Equal(t, a, b)

	c := DeriveSealKey([]byte("x"), []byte("other"))
	assert.NotEqual(t, a, c)
}
