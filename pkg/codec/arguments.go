package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

type entry struct {
	key   string
	tag   TypeTag
	value []byte
}

// Arguments is the ordered, tagged key/value set passed to a contract call.
//
// Setting a key again replaces its value but keeps its original position.
// Mandatory keys are declared with Require and checked when the set is
// validated or encoded, never by the setters themselves.
type Arguments struct {
	entries  []entry
	index    map[string]int
	required []string
}

func NewArguments() *Arguments {
	return &Arguments{index: make(map[string]int)}
}

// Set stores a raw value under key with the given tag. The tag and width are
// checked by Validate and Encode.
func (a *Arguments) Set(key string, tag TypeTag, value []byte) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	v := append([]byte(nil), value...)
	if i, ok := a.index[key]; ok {
		a.entries[i] = entry{key: key, tag: tag, value: v}
		return
	}
	a.index[key] = len(a.entries)
	a.entries = append(a.entries, entry{key: key, tag: tag, value: v})
}

func (a *Arguments) SetAddress(key string, v Address)     { a.Set(key, TypeAddress, v[:]) }
func (a *Arguments) SetAgentID(key string, v AgentID)     { a.Set(key, TypeAgentID, v[:]) }
func (a *Arguments) SetChainID(key string, v ChainID)     { a.Set(key, TypeChainID, v[:]) }
func (a *Arguments) SetColor(key string, v Color)         { a.Set(key, TypeColor, v[:]) }
func (a *Arguments) SetHash(key string, v Hash)           { a.Set(key, TypeHash, v[:]) }
func (a *Arguments) SetRequestID(key string, v RequestID) { a.Set(key, TypeRequestID, v[:]) }
func (a *Arguments) SetHname(key string, v Hname)         { a.Set(key, TypeHname, v.Bytes()) }
func (a *Arguments) SetBytes(key string, v []byte)        { a.Set(key, TypeBytes, v) }
func (a *Arguments) SetString(key string, v string)       { a.Set(key, TypeString, []byte(v)) }

func (a *Arguments) SetBool(key string, v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	a.Set(key, TypeBool, []byte{b})
}

func (a *Arguments) SetInt8(key string, v int8)   { a.SetUint8(key, uint8(v)) }
func (a *Arguments) SetInt16(key string, v int16) { a.SetUint16(key, uint16(v)) }
func (a *Arguments) SetInt32(key string, v int32) { a.SetUint32(key, uint32(v)) }
func (a *Arguments) SetInt64(key string, v int64) { a.SetUint64(key, uint64(v)) }

func (a *Arguments) SetUint8(key string, v uint8) { a.Set(key, TypeInt8, []byte{v}) }

func (a *Arguments) SetUint16(key string, v uint16) {
	a.Set(key, TypeInt16, binary.LittleEndian.AppendUint16(nil, v))
}

func (a *Arguments) SetUint32(key string, v uint32) {
	a.Set(key, TypeInt32, binary.LittleEndian.AppendUint32(nil, v))
}

func (a *Arguments) SetUint64(key string, v uint64) {
	a.Set(key, TypeInt64, binary.LittleEndian.AppendUint64(nil, v))
}

// SetMap nests m under key. Mandatory keys of m are not checked.
func (a *Arguments) SetMap(key string, m *Arguments) {
	a.Set(key, TypeMap, m.encodeEntries())
}

// Require marks keys as mandatory.
func (a *Arguments) Require(keys ...string) {
	a.required = append(a.required, keys...)
}

// Has reports whether key was set.
func (a *Arguments) Has(key string) bool {
	if a == nil {
		return false
	}
	_, ok := a.index[key]
	return ok
}

// Len returns the number of distinct keys.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Keys returns the keys in insertion order.
func (a *Arguments) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.entries))
	for i, e := range a.entries {
		keys[i] = e.key
	}
	return keys
}

// Validate checks that every mandatory key was set and every value fits its tag.
func (a *Arguments) Validate() error {
	if a == nil {
		return nil
	}
	for _, key := range a.required {
		if !a.Has(key) {
			return &ValidationError{Key: key}
		}
	}
	for _, e := range a.entries {
		if err := checkValue(e); err != nil {
			return err
		}
	}
	return nil
}

// Encode validates the set and returns its canonical encoding:
//
//	u32 count
//	per entry: u16 keyLen | key | u8 tag | value
//
// Fixed-width values are written as-is; Bytes, String and Map values carry a
// u32 length prefix. All integers are little-endian.
func (a *Arguments) Encode() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a.encodeEntries(), nil
}

func (a *Arguments) encodeEntries() []byte {
	if a == nil {
		return binary.LittleEndian.AppendUint32(nil, 0)
	}
	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(a.entries)))
	for _, e := range a.entries {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(e.key)))
		buf = append(buf, e.key...)
		buf = append(buf, byte(e.tag))
		if e.tag.Variable() {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.value)))
		}
		buf = append(buf, e.value...)
	}
	return buf
}

func checkValue(e entry) error {
	if !e.tag.Valid() {
		return decodeErr(e.key, e.tag, ErrInvalidTag)
	}
	if len(e.key) > math.MaxUint16 {
		return decodeErr(e.key[:16]+"...", e.tag, fmt.Errorf("%w: key too long", ErrMalformed))
	}
	if size := e.tag.Size(); size != 0 && len(e.value) != size {
		return lengthErr(e.key, e.tag, size, len(e.value))
	}
	if e.tag == TypeBool && e.value[0] > 1 {
		return decodeErr(e.key, e.tag, fmt.Errorf("%w: bool byte %d", ErrMalformed, e.value[0]))
	}
	return nil
}

// decodeEntries parses one encoded set from the front of buf and reports how
// many bytes it consumed.
func decodeEntries(buf []byte) ([]entry, int, error) {
	r := reader{buf: buf}
	count, err := r.uint32()
	if err != nil {
		return nil, 0, err
	}
	entries := make([]entry, 0, min(int(count), len(buf)/4))
	for i := uint32(0); i < count; i++ {
		keyLen, err := r.uint16()
		if err != nil {
			return nil, 0, err
		}
		key, err := r.bytes(int(keyLen))
		if err != nil {
			return nil, 0, err
		}
		rawTag, err := r.bytes(1)
		if err != nil {
			return nil, 0, err
		}
		tag := TypeTag(rawTag[0])
		if !tag.Valid() {
			return nil, 0, decodeErr(string(key), tag, ErrInvalidTag)
		}
		size := tag.Size()
		if size == 0 {
			n, err := r.uint32()
			if err != nil {
				return nil, 0, err
			}
			size = int(n)
		}
		value, err := r.bytes(size)
		if err != nil {
			return nil, 0, err
		}
		e := entry{key: string(key), tag: tag, value: append([]byte(nil), value...)}
		if err := checkValue(e); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, r.pos, nil
}

// DecodeArguments parses an encoded argument set from the front of buf and
// returns it with the number of bytes consumed.
func DecodeArguments(buf []byte) (*Arguments, int, error) {
	entries, n, err := decodeEntries(buf)
	if err != nil {
		return nil, 0, err
	}
	a := NewArguments()
	for _, e := range entries {
		a.Set(e.key, e.tag, e.value)
	}
	return a, n, nil
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || len(r.buf)-r.pos < n {
		return nil, decodeErr("", 0, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrMalformed, n, r.pos, len(r.buf)-r.pos))
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
