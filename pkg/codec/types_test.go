package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepoker/waspclient/pkg/codec"
)

func TestTypeTag_Sizes(t *testing.T) {
	sizes := map[codec.TypeTag]int{
		codec.TypeAddress:   33,
		codec.TypeAgentID:   37,
		codec.TypeBool:      1,
		codec.TypeBytes:     0,
		codec.TypeChainID:   33,
		codec.TypeColor:     32,
		codec.TypeHash:      32,
		codec.TypeHname:     4,
		codec.TypeInt8:      1,
		codec.TypeInt16:     2,
		codec.TypeInt32:     4,
		codec.TypeInt64:     8,
		codec.TypeMap:       0,
		codec.TypeRequestID: 34,
		codec.TypeString:    0,
	}
	for tag, size := range sizes {
		assert.Equal(t, size, tag.Size(), tag.String())
		assert.Equal(t, size == 0, tag.Variable(), tag.String())
	}
	assert.False(t, codec.TypeTag(0).Valid())
	assert.False(t, codec.TypeTag(16).Valid())
	assert.Equal(t, "TypeTag(16)", codec.TypeTag(16).String())
}

func TestBase58RoundTrip(t *testing.T) {
	addr := codec.Address(seq(9, codec.AddressLength))
	parsedAddr, err := codec.ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsedAddr)

	agent := codec.NewAgentID(addr, 42)
	parsedAgent, err := codec.ParseAgentID(agent.String())
	require.NoError(t, err)
	assert.Equal(t, agent, parsedAgent)

	reqID := codec.NewRequestID(codec.HashData([]byte("req")), 0)
	parsedReq, err := codec.ParseRequestID(reqID.String())
	require.NoError(t, err)
	assert.Equal(t, reqID, parsedReq)

	iota, err := codec.ParseColor("IOTA")
	require.NoError(t, err)
	assert.Equal(t, codec.IOTAColor, iota)

	zero, err := codec.ParseColor(codec.IOTAColor.String())
	require.NoError(t, err)
	assert.Equal(t, codec.IOTAColor, zero)

	_, err = codec.ParseAddress(codec.Hash(seq(1, codec.HashLength)).String())
	assert.ErrorIs(t, err, codec.ErrInvalidLength)

	_, err = codec.ParseChainID("0OIl")
	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestHnameFromName_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		want codec.Hname
	}{
		{"doodle", 0xb40a047a},
		{"accounts", 0x3c4b5e02},
		{"deposit", 0xbdc9102d},
		{"harvest", 0x7b40efbd},
		{"withdraw", 0x9dcc0f41},
		{"blocklog", 0xf538ef2b},
		{"joinNextHand", 0x1bdf6468},
		{"joinNextBigBlind", 0x806a30f9},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, codec.HnameFromName(test.name))
		})
	}
}

func TestHname(t *testing.T) {
	h := codec.HnameFromName("doodle")
	assert.Equal(t, h, codec.HnameFromName("doodle"))
	assert.NotEqual(t, h, codec.HnameFromName("accounts"))
	assert.NotZero(t, h)

	parsed, err := codec.ParseHname(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
	assert.Equal(t, "b40a047a", codec.Hname(0xb40a047a).String())
	assert.Equal(t, []byte{0x7a, 0x04, 0x0a, 0xb4}, codec.Hname(0xb40a047a).Bytes())

	_, err = codec.ParseHname("not-hex")
	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestRequestID_Layout(t *testing.T) {
	h := codec.HashData([]byte("payload"))
	id := codec.NewRequestID(h, 0x0102)
	assert.Equal(t, h[:], id[:codec.HashLength])
	assert.Equal(t, []byte{0x02, 0x01}, id[codec.HashLength:])
}
