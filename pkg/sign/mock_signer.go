package sign

import (
	"github.com/doodlepoker/waspclient/pkg/codec"
)

var _ Signer = (*MockSigner)(nil)

// MockSigner is a deterministic Signer for tests. Its signatures have the
// ed25519 width but do not verify.
type MockSigner struct {
	publicKey MockPublicKey
	err       error
}

// NewMockSigner creates a MockSigner whose key is derived from id.
func NewMockSigner(id string) *MockSigner {
	h := codec.HashData([]byte(id))
	return &MockSigner{publicKey: MockPublicKey(h[:])}
}

// NewFailingMockSigner creates a MockSigner whose Sign always returns err.
func NewFailingMockSigner(id string, err error) *MockSigner {
	m := NewMockSigner(id)
	m.err = err
	return m
}

// Sign returns blake2b(data ‖ key) ‖ blake2b(key ‖ data).
func (m *MockSigner) Sign(data []byte) (Signature, error) {
	if m.err != nil {
		return nil, m.err
	}
	a := codec.HashData(data, m.publicKey)
	b := codec.HashData(m.publicKey, data)
	return Signature(append(a[:], b[:]...)), nil
}

func (m *MockSigner) PublicKey() PublicKey {
	return m.publicKey
}

var _ PublicKey = MockPublicKey(nil)

// MockPublicKey is a 32-byte key used by MockSigner.
type MockPublicKey []byte

func (m MockPublicKey) Address() codec.Address { return AddressFromPublicKey(m) }
func (m MockPublicKey) Bytes() []byte          { return append([]byte(nil), m...) }
