package sign

import (
	"crypto/ed25519"
	"encoding/json"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/doodlepoker/waspclient/pkg/codec"
)

// Signer is a key pair that can authorize requests.
type Signer interface {
	PublicKey() PublicKey                // Public key associated with this signer.
	Sign(data []byte) (Signature, error) // Sign generates a signature for the given data.
}

// IsNil reports whether s is nil or an interface holding a nil pointer.
func IsNil(s Signer) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// PublicKey is the public half of a Signer.
type PublicKey interface {
	Address() codec.Address
	Bytes() []byte
}

// AddressVersionED25519 is the version byte of addresses backed by an ed25519 key.
const AddressVersionED25519 byte = 0

// Signature is a raw signature.
type Signature []byte

// MarshalJSON implements the json.Marshaler interface, encoding the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// String implements the fmt.Stringer interface
func (s Signature) String() string {
	return hexutil.Encode(s)
}

// AddressFromPublicKey derives the ledger address of an ed25519 public key.
func AddressFromPublicKey(pub []byte) codec.Address {
	var addr codec.Address
	addr[0] = AddressVersionED25519
	h := codec.HashData(pub)
	copy(addr[1:], h[:])
	return addr
}

// Verify reports whether sig is a valid ed25519 signature of data by pub.
func Verify(pub []byte, data []byte, sig Signature) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), data, sig)
}
