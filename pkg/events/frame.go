package events

import (
	"net/url"
	"strings"
)

// FramePrefix is the first segment of every event frame.
const FramePrefix = "vmmsg"

// Frame is one parsed event frame.
type Frame struct {
	ChainID  string
	Contract string
	Topic    string
	Fields   []string
}

// ParseFrame splits text into its segments. It reports false unless text has
// exactly four space-separated segments and the first is FramePrefix.
func ParseFrame(text string) (Frame, bool) {
	segments := strings.Split(text, " ")
	if len(segments) != 4 || segments[0] != FramePrefix {
		return Frame{}, false
	}
	tokens := strings.Split(segments[3], "|")
	if tokens[0] == "" {
		return Frame{}, false
	}
	return Frame{
		ChainID:  segments[1],
		Contract: segments[2],
		Topic:    tokens[0],
		Fields:   tokens[1:],
	}, true
}

// String rebuilds the wire form of f.
func (f Frame) String() string {
	parts := append([]string{f.Topic}, f.Fields...)
	return strings.Join([]string{FramePrefix, f.ChainID, f.Contract, strings.Join(parts, "|")}, " ")
}

// ExpandURL substitutes %chainId in template and prepends ws:// when the
// template has no websocket scheme.
func ExpandURL(template, chainID string) string {
	u := template
	if !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
		u = "ws://" + u
	}
	return strings.ReplaceAll(u, "%chainId", url.PathEscape(chainID))
}
