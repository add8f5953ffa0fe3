package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepoker/waspclient/pkg/codec"
)

func TestTransfer_DeterministicOrder(t *testing.T) {
	red := codec.Color(seq(0x80, codec.ColorLength))
	blue := codec.Color(seq(0x10, codec.ColorLength))

	first := codec.NewTransfer()
	first.Set(red, 5)
	first.Set(codec.IOTAColor, 100)
	first.Set(blue, 7)

	second := codec.NewTransfer()
	second.Set(blue, 7)
	second.Set(red, 5)
	second.Set(codec.IOTAColor, 100)

	assert.Equal(t, first.Encode(), second.Encode())
	assert.Equal(t, []codec.Color{codec.IOTAColor, blue, red}, first.Colors())
}

func TestTransfer_Layout(t *testing.T) {
	tr := codec.IOTAs(0x0102)
	want := append([]byte{1, 0, 0, 0}, make([]byte, codec.ColorLength)...)
	want = append(want, 0x02, 0x01, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, want, tr.Encode())
}

func TestTransfer_ZeroAmountsAndLastWriteWins(t *testing.T) {
	color := codec.Color(seq(1, codec.ColorLength))

	tr := codec.NewTransfer()
	tr.Set(color, 9)
	tr.Set(color, 0)
	tr.Set(codec.IOTAColor, 1)
	tr.Set(codec.IOTAColor, 2)

	assert.Equal(t, uint64(2), tr.Get(codec.IOTAColor))
	assert.Equal(t, codec.IOTAs(2).Encode(), tr.Encode())

	empty := codec.NewTransfer()
	empty.Set(color, 0)
	assert.Equal(t, []byte{0, 0, 0, 0}, empty.Encode())

	var nilTransfer *codec.Transfer
	assert.Equal(t, []byte{0, 0, 0, 0}, nilTransfer.Encode())
}

func TestDecodeTransfer(t *testing.T) {
	tr := codec.NewTransfer()
	tr.Set(codec.Color(seq(3, codec.ColorLength)), 30)
	tr.Set(codec.IOTAColor, 1000)
	blob := tr.Encode()

	decoded, n, err := codec.DecodeTransfer(append(blob, 0xaa))
	require.NoError(t, err)
	assert.Equal(t, len(blob), n)
	assert.Equal(t, blob, decoded.Encode())

	// Swap the two entries so the colors are out of order.
	entry := codec.ColorLength + 8
	swapped := append([]byte{}, blob[:4]...)
	swapped = append(swapped, blob[4+entry:]...)
	swapped = append(swapped, blob[4:4+entry]...)
	require.False(t, bytes.Equal(blob, swapped))

	_, _, err = codec.DecodeTransfer(swapped)
	assert.ErrorIs(t, err, codec.ErrMalformed)
}
