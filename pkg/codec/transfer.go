package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

// Transfer is a set of token amounts keyed by color.
type Transfer struct {
	amounts map[Color]uint64
}

func NewTransfer() *Transfer {
	return &Transfer{amounts: make(map[Color]uint64)}
}

// IOTAs returns a transfer of amount base tokens.
func IOTAs(amount uint64) *Transfer {
	return Tokens(IOTAColor, amount)
}

// Tokens returns a transfer of amount tokens of one color.
func Tokens(color Color, amount uint64) *Transfer {
	t := NewTransfer()
	t.Set(color, amount)
	return t
}

// Set replaces the amount for color.
func (t *Transfer) Set(color Color, amount uint64) {
	if t.amounts == nil {
		t.amounts = make(map[Color]uint64)
	}
	t.amounts[color] = amount
}

// Get returns the amount for color, or 0.
func (t *Transfer) Get(color Color) uint64 {
	if t == nil {
		return 0
	}
	return t.amounts[color]
}

// Colors returns the colors with a non-zero amount in encoding order.
func (t *Transfer) Colors() []Color {
	if t == nil {
		return nil
	}
	colors := make([]Color, 0, len(t.amounts))
	for c, amount := range t.amounts {
		if amount != 0 {
			colors = append(colors, c)
		}
	}
	sort.Slice(colors, func(i, j int) bool {
		return bytes.Compare(colors[i][:], colors[j][:]) < 0
	})
	return colors
}

// Encode returns the canonical form that ends up inside signed requests:
//
//	u32 count | (color[32] | u64 amount) * count
//
// Zero amounts are left out and colors are in ascending byte order, so two
// transfers with the same non-zero content always encode identically.
func (t *Transfer) Encode() []byte {
	colors := t.Colors()
	buf := make([]byte, 0, 4+len(colors)*(ColorLength+8))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(colors)))
	for _, c := range colors {
		buf = append(buf, c[:]...)
		buf = binary.LittleEndian.AppendUint64(buf, t.amounts[c])
	}
	return buf
}

// DecodeTransfer parses an encoded transfer from the front of buf and returns
// it with the number of bytes consumed.
func DecodeTransfer(buf []byte) (*Transfer, int, error) {
	r := reader{buf: buf}
	count, err := r.uint32()
	if err != nil {
		return nil, 0, err
	}
	t := NewTransfer()
	var prev []byte
	for i := uint32(0); i < count; i++ {
		raw, err := r.bytes(ColorLength + 8)
		if err != nil {
			return nil, 0, err
		}
		if prev != nil && bytes.Compare(prev, raw[:ColorLength]) >= 0 {
			return nil, 0, decodeErr("", TypeColor, fmt.Errorf("%w: colors not in ascending order", ErrMalformed))
		}
		var c Color
		copy(c[:], raw[:ColorLength])
		t.Set(c, binary.LittleEndian.Uint64(raw[ColorLength:]))
		prev = raw[:ColorLength]
	}
	return t, r.pos, nil
}
