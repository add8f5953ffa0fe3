package codec

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

// TypeTag identifies how an argument or result value is laid out.
// The numeric values are the wire tags.
type TypeTag uint8

const (
	TypeAddress   TypeTag = 1
	TypeAgentID   TypeTag = 2
	TypeBool      TypeTag = 3
	TypeBytes     TypeTag = 4
	TypeChainID   TypeTag = 5
	TypeColor     TypeTag = 6
	TypeHash      TypeTag = 7
	TypeHname     TypeTag = 8
	TypeInt8      TypeTag = 9
	TypeInt16     TypeTag = 10
	TypeInt32     TypeTag = 11
	TypeInt64     TypeTag = 12
	TypeMap       TypeTag = 13
	TypeRequestID TypeTag = 14
	TypeString    TypeTag = 15
)

// Fixed value widths in bytes.
const (
	AddressLength   = 33
	AgentIDLength   = AddressLength + HnameLength
	ChainIDLength   = 33
	ColorLength     = 32
	HashLength      = 32
	HnameLength     = 4
	RequestIDLength = HashLength + 2
)

// typeSizes is indexed by tag; 0 marks a variable-width type.
var typeSizes = [...]int{
	0,
	AddressLength, AgentIDLength, 1, 0, ChainIDLength, ColorLength, HashLength, HnameLength,
	1, 2, 4, 8,
	0, RequestIDLength, 0,
}

var typeNames = [...]string{
	"Invalid",
	"Address", "AgentID", "Bool", "Bytes", "ChainID", "Color", "Hash", "Hname",
	"Int8", "Int16", "Int32", "Int64",
	"Map", "RequestID", "String",
}

// Valid reports whether t is one of the known tags.
func (t TypeTag) Valid() bool { return t >= TypeAddress && t <= TypeString }

// Size returns the fixed width of t, or 0 for variable-width types.
func (t TypeTag) Size() int {
	if !t.Valid() {
		return 0
	}
	return typeSizes[t]
}

// Variable reports whether values of t carry a length prefix.
func (t TypeTag) Variable() bool { return t.Valid() && typeSizes[t] == 0 }

func (t TypeTag) String() string {
	if !t.Valid() {
		return "TypeTag(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Address is a ledger address: a version byte followed by a 32-byte digest.
type Address [AddressLength]byte

// AgentID identifies an account or contract: an address plus a contract hname.
type AgentID [AgentIDLength]byte

// ChainID identifies a chain by the alias address of its state output.
type ChainID [ChainIDLength]byte

// Color identifies a token type. The zero color is the base token (IOTA).
type Color [ColorLength]byte

// Hash is a blake2b-256 digest.
type Hash [HashLength]byte

// Hname is the 32-bit hashed name of a contract, entry point or view.
type Hname uint32

// RequestID is the hash of a request followed by a little-endian output index.
type RequestID [RequestIDLength]byte

// IOTAColor is the color of the base token.
var IOTAColor = Color{}

// HashData returns the blake2b-256 digest of data.
func HashData(data ...[]byte) Hash {
	h, _ := blake2b.New256(nil)
	for _, d := range data {
		h.Write(d)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HnameFromName derives the hname of a contract or function name.
// 0 and 0xffffffff are reserved, so the next four digest bytes are used
// when the first four produce either value.
func HnameFromName(name string) Hname {
	return hnameFromDigest(HashData([]byte(name)))
}

func hnameFromDigest(digest Hash) Hname {
	h := Hname(binary.LittleEndian.Uint32(digest[:4]))
	if h == 0 || h == Hname(^uint32(0)) {
		h = Hname(binary.LittleEndian.Uint32(digest[4:8]))
	}
	return h
}

func (h Hname) String() string { return fmt.Sprintf("%08x", uint32(h)) }

// Bytes returns the little-endian encoding of h.
func (h Hname) Bytes() []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(h))
}

// ParseHname parses the 8-digit hex form produced by Hname.String.
func ParseHname(s string) (Hname, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, decodeErr("", TypeHname, fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return Hname(v), nil
}

// NewAgentID joins an address and a contract hname.
func NewAgentID(addr Address, hname Hname) AgentID {
	var a AgentID
	copy(a[:], addr[:])
	binary.LittleEndian.PutUint32(a[AddressLength:], uint32(hname))
	return a
}

// Address returns the address part of a.
func (a AgentID) Address() Address {
	var addr Address
	copy(addr[:], a[:AddressLength])
	return addr
}

// Hname returns the contract part of a; 0 for plain accounts.
func (a AgentID) Hname() Hname {
	return Hname(binary.LittleEndian.Uint32(a[AddressLength:]))
}

// NewRequestID builds the id of the request whose serialized form hashes to h.
func NewRequestID(h Hash, index uint16) RequestID {
	var id RequestID
	copy(id[:], h[:])
	binary.LittleEndian.PutUint16(id[HashLength:], index)
	return id
}

func (a Address) String() string   { return base58.Encode(a[:]) }
func (a AgentID) String() string   { return base58.Encode(a[:]) }
func (c ChainID) String() string   { return base58.Encode(c[:]) }
func (c Color) String() string     { return base58.Encode(c[:]) }
func (h Hash) String() string      { return base58.Encode(h[:]) }
func (r RequestID) String() string { return base58.Encode(r[:]) }

// Hex returns the hex form used in node REST paths.
func (h Hash) Hex() string { return hex.EncodeToString(h[:]) }

func ParseAddress(s string) (Address, error) {
	var a Address
	err := parseBase58(s, TypeAddress, a[:])
	return a, err
}

func ParseAgentID(s string) (AgentID, error) {
	var a AgentID
	err := parseBase58(s, TypeAgentID, a[:])
	return a, err
}

func ParseChainID(s string) (ChainID, error) {
	var c ChainID
	err := parseBase58(s, TypeChainID, c[:])
	return c, err
}

func ParseColor(s string) (Color, error) {
	if s == "IOTA" {
		return IOTAColor, nil
	}
	var c Color
	err := parseBase58(s, TypeColor, c[:])
	return c, err
}

func ParseHash(s string) (Hash, error) {
	var h Hash
	err := parseBase58(s, TypeHash, h[:])
	return h, err
}

func ParseRequestID(s string) (RequestID, error) {
	var r RequestID
	err := parseBase58(s, TypeRequestID, r[:])
	return r, err
}

func parseBase58(s string, tag TypeTag, dst []byte) error {
	raw := base58.Decode(s)
	if len(raw) == 0 && s != "" {
		return decodeErr("", tag, fmt.Errorf("%w: invalid base58 %q", ErrMalformed, s))
	}
	if len(raw) != len(dst) {
		return lengthErr("", tag, len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
