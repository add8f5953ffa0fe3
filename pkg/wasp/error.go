package wasp

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every error caused by the node or the network.
	ErrTransport = errors.New("wasp transport error")
	// ErrNoChain is returned by DiscoverChainID when the node hosts no chain.
	ErrNoChain = errors.New("node reports no chain")
)

// StatusError is returned when the node answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrTransport }
