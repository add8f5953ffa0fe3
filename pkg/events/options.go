package events

import (
	"github.com/doodlepoker/waspclient/pkg/log"
)

// Drop reasons reported by Recorder.FrameDropped.
const (
	DropMalformed    = "malformed"
	DropUnknownTopic = "unknown_topic"
	DropDecodeError  = "decode_error"
)

// Recorder receives counters from the registry and the dispatcher.
// *metrics.Metrics implements it.
type Recorder interface {
	SetConnected(connected bool)
	Reconnect()
	FrameReceived()
	FrameDropped(reason string)
	EventDispatched(topic string)
	HandlerPanicked(topic string)
}

type noopRecorder struct{}

func (noopRecorder) SetConnected(bool)      {}
func (noopRecorder) Reconnect()             {}
func (noopRecorder) FrameReceived()         {}
func (noopRecorder) FrameDropped(string)    {}
func (noopRecorder) EventDispatched(string) {}
func (noopRecorder) HandlerPanicked(string) {}

type options struct {
	lg  log.Logger
	rec Recorder
}

// Option configures a Registry or a Dispatcher.
type Option func(*options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(lg log.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.lg = lg
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(rec Recorder) Option {
	return func(o *options) {
		if rec != nil {
			o.rec = rec
		}
	}
}

func newOptions(name string, opts []Option) options {
	o := options{lg: log.NewNoopLogger(), rec: noopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	o.lg = o.lg.WithName(name)
	return o
}
