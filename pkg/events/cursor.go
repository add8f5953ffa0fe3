package events

import (
	"fmt"
	"strconv"

	"github.com/doodlepoker/waspclient/pkg/codec"
)

// Cursor reads the typed fields of a frame in order. The first failure is
// kept: every later read returns a zero value and Err reports that failure.
type Cursor struct {
	fields []string
	pos    int
	err    error
}

func NewCursor(fields []string) *Cursor {
	return &Cursor{fields: fields}
}

// Err returns the first error met while reading.
func (c *Cursor) Err() error { return c.err }

// Remaining returns the number of unread fields.
func (c *Cursor) Remaining() int { return max(len(c.fields)-c.pos, 0) }

// Next returns the next raw field.
func (c *Cursor) Next() string {
	s, _ := c.next(0)
	return s
}

func (c *Cursor) next(tag codec.TypeTag) (string, bool) {
	if c.err != nil {
		return "", false
	}
	if c.pos >= len(c.fields) {
		c.pos++
		c.fail(tag, fmt.Errorf("%w: field missing", codec.ErrMalformed))
		return "", false
	}
	s := c.fields[c.pos]
	c.pos++
	return s, true
}

// fail records err against the field read last.
func (c *Cursor) fail(tag codec.TypeTag, err error) {
	if c.err == nil {
		c.err = &codec.DecodingError{Key: "field " + strconv.Itoa(c.pos-1), Tag: tag, Err: err}
	}
}

// Text returns the next field as-is.
func (c *Cursor) Text() string {
	s, _ := c.next(codec.TypeString)
	return s
}

func (c *Cursor) Bool() bool {
	s, ok := c.next(codec.TypeBool)
	if !ok {
		return false
	}
	switch s {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	c.fail(codec.TypeBool, fmt.Errorf("%w: bool %q", codec.ErrMalformed, s))
	return false
}

func (c *Cursor) Bytes() []byte {
	s, ok := c.next(codec.TypeBytes)
	if !ok {
		return nil
	}
	raw, err := decodeBase58(s, -1)
	if err != nil {
		c.fail(codec.TypeBytes, err)
		return nil
	}
	return raw
}

func (c *Cursor) Hname() codec.Hname {
	s, ok := c.next(codec.TypeHname)
	if !ok {
		return 0
	}
	h, err := codec.ParseHname(s)
	if err != nil {
		c.fail(codec.TypeHname, err)
		return 0
	}
	return h
}

func (c *Cursor) Address() (out codec.Address) {
	c.fixed(codec.TypeAddress, out[:])
	return out
}

func (c *Cursor) AgentID() (out codec.AgentID) {
	c.fixed(codec.TypeAgentID, out[:])
	return out
}

func (c *Cursor) ChainID() (out codec.ChainID) {
	c.fixed(codec.TypeChainID, out[:])
	return out
}

func (c *Cursor) Color() (out codec.Color) {
	c.fixed(codec.TypeColor, out[:])
	return out
}

func (c *Cursor) Hash() (out codec.Hash) {
	c.fixed(codec.TypeHash, out[:])
	return out
}

func (c *Cursor) RequestID() (out codec.RequestID) {
	c.fixed(codec.TypeRequestID, out[:])
	return out
}

func (c *Cursor) fixed(tag codec.TypeTag, dst []byte) {
	s, ok := c.next(tag)
	if !ok {
		return
	}
	raw, err := decodeBase58(s, len(dst))
	if err != nil {
		c.fail(tag, err)
		return
	}
	copy(dst, raw)
}

func (c *Cursor) Int8() int8   { return int8(c.int(codec.TypeInt8, 8)) }
func (c *Cursor) Int16() int16 { return int16(c.int(codec.TypeInt16, 16)) }
func (c *Cursor) Int32() int32 { return int32(c.int(codec.TypeInt32, 32)) }
func (c *Cursor) Int64() int64 { return c.int(codec.TypeInt64, 64) }

func (c *Cursor) Uint8() uint8   { return uint8(c.uint(codec.TypeInt8, 8)) }
func (c *Cursor) Uint16() uint16 { return uint16(c.uint(codec.TypeInt16, 16)) }
func (c *Cursor) Uint32() uint32 { return uint32(c.uint(codec.TypeInt32, 32)) }
func (c *Cursor) Uint64() uint64 { return c.uint(codec.TypeInt64, 64) }

func (c *Cursor) int(tag codec.TypeTag, bits int) int64 {
	s, ok := c.next(tag)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		c.fail(tag, fmt.Errorf("%w: %v", codec.ErrMalformed, err))
		return 0
	}
	return v
}

func (c *Cursor) uint(tag codec.TypeTag, bits int) uint64 {
	s, ok := c.next(tag)
	if !ok {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		c.fail(tag, fmt.Errorf("%w: %v", codec.ErrMalformed, err))
		return 0
	}
	return v
}
