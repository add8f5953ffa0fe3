package sign

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/doodlepoker/waspclient/pkg/codec"
)

// SeedSize is the length of a wallet seed.
const SeedSize = 32

var ErrInvalidKey = errors.New("invalid key")

var _ Signer = (*ED25519Signer)(nil)
var _ PublicKey = ED25519PublicKey{}

// ED25519PublicKey implements the PublicKey interface for ledger keys.
type ED25519PublicKey struct{ ed25519.PublicKey }

func (p ED25519PublicKey) Address() codec.Address { return AddressFromPublicKey(p.PublicKey) }
func (p ED25519PublicKey) Bytes() []byte          { return append([]byte(nil), p.PublicKey...) }

// ED25519Signer signs with an ed25519 private key.
type ED25519Signer struct {
	privateKey ed25519.PrivateKey
	publicKey  ED25519PublicKey
}

func (s *ED25519Signer) PublicKey() PublicKey { return s.publicKey }

// Sign signs data as-is; callers hash the payload first.
func (s *ED25519Signer) Sign(data []byte) (Signature, error) {
	return Signature(ed25519.Sign(s.privateKey, data)), nil
}

// NewED25519Signer creates a signer from a 64-byte ed25519 private key.
func NewED25519Signer(privateKey []byte) (*ED25519Signer, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidKey, ed25519.PrivateKeySize, len(privateKey))
	}
	key := ed25519.PrivateKey(append([]byte(nil), privateKey...))
	return &ED25519Signer{
		privateKey: key,
		publicKey:  ED25519PublicKey{key.Public().(ed25519.PublicKey)},
	}, nil
}

// NewED25519SignerFromSeed derives the key pair at index from a wallet seed.
// The key seed is the wallet seed XOR blake2b-256(index as u64 LE).
func NewED25519SignerFromSeed(seed [SeedSize]byte, index uint64) *ED25519Signer {
	sub := SubSeed(seed, index)
	key := ed25519.NewKeyFromSeed(sub[:])
	return &ED25519Signer{
		privateKey: key,
		publicKey:  ED25519PublicKey{key.Public().(ed25519.PublicKey)},
	}
}

// SubSeed returns the key seed at index.
func SubSeed(seed [SeedSize]byte, index uint64) [SeedSize]byte {
	h := codec.HashData(binary.LittleEndian.AppendUint64(nil, index))
	var sub [SeedSize]byte
	for i := range sub {
		sub[i] = seed[i] ^ h[i]
	}
	return sub
}

// ParseSeed decodes a base58 wallet seed.
func ParseSeed(s string) ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	raw := base58.Decode(s)
	if len(raw) != SeedSize {
		return seed, fmt.Errorf("%w: seed must decode to %d bytes, got %d", ErrInvalidKey, SeedSize, len(raw))
	}
	copy(seed[:], raw)
	return seed, nil
}
