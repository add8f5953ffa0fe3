package sign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSigner(t *testing.T) {
	signer := NewMockSigner("test-id")
	data := []byte("test data")

	sig, err := signer.Sign(data)
	require.NoError(t, err)
	assert.Len(t, sig, 64)

	again, err := NewMockSigner("test-id").Sign(data)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	other, err := NewMockSigner("other-id").Sign(data)
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)

	pk := signer.PublicKey()
	assert.Len(t, pk.Bytes(), 32)
	assert.Equal(t, AddressFromPublicKey(pk.Bytes()), pk.Address())
	assert.False(t, Verify(pk.Bytes(), data, sig))
}

func TestFailingMockSigner(t *testing.T) {
	boom := errors.New("hsm offline")
	signer := NewFailingMockSigner("test-id", boom)

	_, err := signer.Sign([]byte("data"))
	assert.ErrorIs(t, err, boom)
}
