package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/events"
)

func TestCursor_TypedFields(t *testing.T) {
	t.Parallel()

	var addr codec.Address
	addr[1] = 7
	agent := codec.NewAgentID(addr, 0xb40a047a)
	var color codec.Color
	color[31] = 1

	c := events.NewCursor([]string{
		"-5", "65535", "4294967295", "18446744073709551615",
		"true", "0",
		agent.String(), color.String(), "b40a047a", "player one",
	})

	assert.Equal(t, int8(-5), c.Int8())
	assert.Equal(t, uint16(65535), c.Uint16())
	assert.Equal(t, uint32(4294967295), c.Uint32())
	assert.Equal(t, uint64(18446744073709551615), c.Uint64())
	assert.True(t, c.Bool())
	assert.False(t, c.Bool())
	assert.Equal(t, agent, c.AgentID())
	assert.Equal(t, color, c.Color())
	assert.Equal(t, codec.Hname(0xb40a047a), c.Hname())
	assert.Equal(t, "player one", c.Text())
	require.NoError(t, c.Err())
	assert.Zero(t, c.Remaining())
}

func TestCursor_StickyError(t *testing.T) {
	t.Parallel()

	c := events.NewCursor([]string{"x12", "7"})
	assert.Zero(t, c.Uint32())
	assert.Zero(t, c.Uint32(), "reads after a failure return zero values")

	err := c.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformed)

	var derr *codec.DecodingError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "field 0", derr.Key)
	assert.Equal(t, codec.TypeInt32, derr.Tag)
}

func TestCursor_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing field", func(t *testing.T) {
		c := events.NewCursor([]string{"1"})
		c.Uint32()
		c.Uint16()
		assert.ErrorIs(t, c.Err(), codec.ErrMalformed)
	})

	t.Run("overflow", func(t *testing.T) {
		c := events.NewCursor([]string{"256"})
		c.Uint8()
		assert.ErrorIs(t, c.Err(), codec.ErrMalformed)
	})

	t.Run("bad bool", func(t *testing.T) {
		c := events.NewCursor([]string{"yes"})
		c.Bool()
		assert.ErrorIs(t, c.Err(), codec.ErrMalformed)
	})

	t.Run("wrong width", func(t *testing.T) {
		var color codec.Color
		color[0] = 9
		c := events.NewCursor([]string{color.String()})
		c.AgentID()
		assert.ErrorIs(t, c.Err(), codec.ErrInvalidLength)
	})

	t.Run("bad base58", func(t *testing.T) {
		c := events.NewCursor([]string{"0OIl"})
		c.Address()
		assert.ErrorIs(t, c.Err(), codec.ErrMalformed)
	})

	t.Run("bad hname", func(t *testing.T) {
		c := events.NewCursor([]string{"zz"})
		c.Hname()
		assert.ErrorIs(t, c.Err(), codec.ErrMalformed)
	})
}
