package request

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/sign"
)

// TypeOffLedger is the request type byte of off-ledger requests.
const TypeOffLedger byte = 1

// OffLedger is a request submitted directly to a node instead of through a
// ledger transaction. It must be signed before it can be serialized or
// identified.
type OffLedger struct {
	contract   codec.Hname
	entrypoint codec.Hname
	args       *codec.Arguments
	transfer   *codec.Transfer
	nonce      uint64

	publicKey []byte
	signature sign.Signature
}

type Option func(*OffLedger)

// WithNonce replaces the clock-derived nonce.
func WithNonce(nonce uint64) Option {
	return func(r *OffLedger) { r.nonce = nonce }
}

// NewOffLedger creates an unsigned request calling entrypoint on contract.
//
// The nonce defaults to the current time in nanoseconds. Two requests built
// within the same clock tick with identical content would collide, so callers
// that fire requests in tight loops should pass WithNonce.
func NewOffLedger(contract, entrypoint codec.Hname, args *codec.Arguments, transfer *codec.Transfer, opts ...Option) *OffLedger {
	r := &OffLedger{
		contract:   contract,
		entrypoint: entrypoint,
		args:       args,
		transfer:   transfer,
		nonce:      uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *OffLedger) Contract() codec.Hname        { return r.contract }
func (r *OffLedger) Entrypoint() codec.Hname      { return r.entrypoint }
func (r *OffLedger) Nonce() uint64                { return r.nonce }
func (r *OffLedger) Args() *codec.Arguments       { return r.args }
func (r *OffLedger) Transfer() *codec.Transfer    { return r.transfer }
func (r *OffLedger) Signature() sign.Signature    { return r.signature }
func (r *OffLedger) Signed() bool                 { return r.signature != nil }
func (r *OffLedger) PublicKey() []byte            { return r.publicKey }
func (r *OffLedger) SenderAddress() codec.Address { return sign.AddressFromPublicKey(r.publicKey) }

// EssenceBytes returns the unsigned payload:
//
//	type(1) | nonce u64 | contract u32 | entrypoint u32 | args | transfer
func (r *OffLedger) EssenceBytes() ([]byte, error) {
	args, err := r.args.Encode()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 17+len(args)+4)
	buf = append(buf, TypeOffLedger)
	buf = binary.LittleEndian.AppendUint64(buf, r.nonce)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(r.contract))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(r.entrypoint))
	buf = append(buf, args...)
	buf = append(buf, r.transfer.Encode()...)
	return buf, nil
}

// Sign signs the blake2b-256 hash of the essence with signer and attaches the
// public key and signature. Signing again replaces both.
func (r *OffLedger) Sign(signer sign.Signer) error {
	if sign.IsNil(signer) {
		return ErrNoKeyPair
	}
	essence, err := r.EssenceBytes()
	if err != nil {
		return err
	}
	pub := signer.PublicKey().Bytes()
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", ErrSigningFailed, ed25519.PublicKeySize, len(pub))
	}
	hash := codec.HashData(essence)
	sig, err := signer.Sign(hash[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: signature must be %d bytes, got %d", ErrSigningFailed, ed25519.SignatureSize, len(sig))
	}
	r.publicKey = pub
	r.signature = sig
	return nil
}

// Bytes returns the signed form: essence | public key(32) | signature(64).
func (r *OffLedger) Bytes() ([]byte, error) {
	if !r.Signed() {
		return nil, ErrNotSigned
	}
	essence, err := r.EssenceBytes()
	if err != nil {
		return nil, err
	}
	buf := append(essence, r.publicKey...)
	return append(buf, r.signature...), nil
}

// ID returns the request id: the blake2b-256 hash of the signed form followed
// by output index 0.
func (r *OffLedger) ID() (codec.RequestID, error) {
	buf, err := r.Bytes()
	if err != nil {
		return codec.RequestID{}, err
	}
	return codec.NewRequestID(codec.HashData(buf), 0), nil
}

// VerifySignature checks the embedded signature against the essence.
func (r *OffLedger) VerifySignature() error {
	if !r.Signed() {
		return ErrNotSigned
	}
	essence, err := r.EssenceBytes()
	if err != nil {
		return err
	}
	hash := codec.HashData(essence)
	if !sign.Verify(r.publicKey, hash[:], r.signature) {
		return ErrInvalidSignature
	}
	return nil
}

// Decode parses the signed form produced by Bytes.
func Decode(buf []byte) (*OffLedger, error) {
	const header = 1 + 8 + 4 + 4
	if len(buf) < header {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformedRequest, len(buf))
	}
	if buf[0] != TypeOffLedger {
		return nil, fmt.Errorf("%w: request type %d", ErrMalformedRequest, buf[0])
	}
	r := &OffLedger{
		nonce:      binary.LittleEndian.Uint64(buf[1:]),
		contract:   codec.Hname(binary.LittleEndian.Uint32(buf[9:])),
		entrypoint: codec.Hname(binary.LittleEndian.Uint32(buf[13:])),
	}
	pos := header

	args, n, err := codec.DecodeArguments(buf[pos:])
	if err != nil {
		return nil, fmt.Errorf("%w: arguments: %w", ErrMalformedRequest, err)
	}
	r.args = args
	pos += n

	transfer, n, err := codec.DecodeTransfer(buf[pos:])
	if err != nil {
		return nil, fmt.Errorf("%w: transfer: %w", ErrMalformedRequest, err)
	}
	r.transfer = transfer
	pos += n

	rest := buf[pos:]
	if len(rest) != ed25519.PublicKeySize+ed25519.SignatureSize {
		return nil, fmt.Errorf("%w: %d bytes after the essence, want %d", ErrMalformedRequest, len(rest), ed25519.PublicKeySize+ed25519.SignatureSize)
	}
	r.publicKey = append([]byte(nil), rest[:ed25519.PublicKeySize]...)
	r.signature = append(sign.Signature(nil), rest[ed25519.PublicKeySize:]...)
	return r, nil
}
