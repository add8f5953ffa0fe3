package codec

import (
	"encoding/binary"
	"fmt"
	"sort"
)

type result struct {
	tag   TypeTag // 0 when the producer did not tag the value
	value []byte
}

// Results holds the raw values returned by a view call. Values are only
// interpreted when a typed getter asks for them, so an absent key or a value
// of the wrong width surfaces as a *DecodingError at that point.
type Results struct {
	res map[string]result
}

func NewResults() *Results {
	return &Results{res: make(map[string]result)}
}

// DecodeResults parses a tagged blob in the Arguments layout.
func DecodeResults(blob []byte) (*Results, error) {
	entries, n, err := decodeEntries(blob)
	if err != nil {
		return nil, err
	}
	if n != len(blob) {
		return nil, decodeErr("", 0, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(blob)-n))
	}
	r := NewResults()
	for _, e := range entries {
		r.res[e.key] = result{tag: e.tag, value: e.value}
	}
	return r, nil
}

// Put stores an untagged raw value, as delivered by the node's JSON view API.
func (r *Results) Put(key string, value []byte) {
	if r.res == nil {
		r.res = make(map[string]result)
	}
	r.res[key] = result{value: append([]byte(nil), value...)}
}

func (r *Results) Exists(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.res[key]
	return ok
}

// Keys returns the stored keys in lexical order.
func (r *Results) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.res))
	for k := range r.res {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the stored bytes without interpretation.
func (r *Results) Raw(key string) ([]byte, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.res[key]
	return v.value, ok
}

func (r *Results) get(key string, tag TypeTag) ([]byte, error) {
	if r == nil {
		return nil, decodeErr(key, tag, ErrKeyNotFound)
	}
	v, ok := r.res[key]
	if !ok {
		return nil, decodeErr(key, tag, ErrKeyNotFound)
	}
	if v.tag != 0 && v.tag != tag {
		return nil, decodeErr(key, tag, fmt.Errorf("%w: stored as %s", ErrTypeMismatch, v.tag))
	}
	if size := tag.Size(); size != 0 && len(v.value) != size {
		return nil, lengthErr(key, tag, size, len(v.value))
	}
	return v.value, nil
}

func (r *Results) GetAddress(key string) (out Address, err error) {
	err = r.getFixed(key, TypeAddress, out[:])
	return out, err
}

func (r *Results) GetAgentID(key string) (out AgentID, err error) {
	err = r.getFixed(key, TypeAgentID, out[:])
	return out, err
}

func (r *Results) GetChainID(key string) (out ChainID, err error) {
	err = r.getFixed(key, TypeChainID, out[:])
	return out, err
}

func (r *Results) GetColor(key string) (out Color, err error) {
	err = r.getFixed(key, TypeColor, out[:])
	return out, err
}

func (r *Results) GetHash(key string) (out Hash, err error) {
	err = r.getFixed(key, TypeHash, out[:])
	return out, err
}

func (r *Results) GetRequestID(key string) (out RequestID, err error) {
	err = r.getFixed(key, TypeRequestID, out[:])
	return out, err
}

func (r *Results) getFixed(key string, tag TypeTag, dst []byte) error {
	b, err := r.get(key, tag)
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func (r *Results) GetHname(key string) (Hname, error) {
	b, err := r.get(key, TypeHname)
	if err != nil {
		return 0, err
	}
	return Hname(binary.LittleEndian.Uint32(b)), nil
}

func (r *Results) GetBool(key string) (bool, error) {
	b, err := r.get(key, TypeBool)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, decodeErr(key, TypeBool, fmt.Errorf("%w: bool byte %d", ErrMalformed, b[0]))
	}
}

func (r *Results) GetBytes(key string) ([]byte, error) {
	b, err := r.get(key, TypeBytes)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func (r *Results) GetString(key string) (string, error) {
	b, err := r.get(key, TypeString)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetMap decodes a nested set stored with Arguments.SetMap.
func (r *Results) GetMap(key string) (*Results, error) {
	b, err := r.get(key, TypeMap)
	if err != nil {
		return nil, err
	}
	return DecodeResults(b)
}

func (r *Results) GetUint8(key string) (uint8, error) {
	b, err := r.get(key, TypeInt8)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Results) GetUint16(key string) (uint16, error) {
	b, err := r.get(key, TypeInt16)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Results) GetUint32(key string) (uint32, error) {
	b, err := r.get(key, TypeInt32)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Results) GetUint64(key string) (uint64, error) {
	b, err := r.get(key, TypeInt64)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Results) GetInt8(key string) (int8, error) {
	v, err := r.GetUint8(key)
	return int8(v), err
}

func (r *Results) GetInt16(key string) (int16, error) {
	v, err := r.GetUint16(key)
	return int16(v), err
}

func (r *Results) GetInt32(key string) (int32, error) {
	v, err := r.GetUint32(key)
	return int32(v), err
}

func (r *Results) GetInt64(key string) (int64, error) {
	v, err := r.GetUint64(key)
	return int64(v), err
}
