package events

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/doodlepoker/waspclient/pkg/codec"
)

// decodeBase58 decodes s and checks it is size bytes long; size < 0 accepts any length.
func decodeBase58(s string, size int) ([]byte, error) {
	raw := base58.Decode(s)
	if len(raw) == 0 && s != "" {
		return nil, fmt.Errorf("%w: invalid base58 %q", codec.ErrMalformed, s)
	}
	if size >= 0 && len(raw) != size {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", codec.ErrInvalidLength, size, len(raw))
	}
	return raw, nil
}
