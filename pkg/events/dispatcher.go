package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/doodlepoker/waspclient/pkg/log"
)

const tracerName = "github.com/doodlepoker/waspclient/pkg/events"

// State is the connection state of a Dispatcher.
type State int32

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// DispatcherConfig contains configuration options for the event channel.
type DispatcherConfig struct {
	// URL is the websocket endpoint, already expanded with ExpandURL.
	URL string

	// ReconnectDelay is the pause between a closed connection and the next dial.
	ReconnectDelay time.Duration

	// HandshakeTimeout is the duration to wait for the WebSocket handshake to complete
	HandshakeTimeout time.Duration
}

// DefaultDispatcherConfig provides the timings used when a field is left zero.
var DefaultDispatcherConfig = DispatcherConfig{
	ReconnectDelay:   time.Second,
	HandshakeTimeout: 5 * time.Second,
}

// Dispatcher keeps a websocket to the node open and hands every frame it
// reads to a Registry. Handlers run on the Run goroutine.
type Dispatcher struct {
	cfg      DispatcherConfig
	registry *Registry
	opts     options
	tracer   trace.Tracer

	state     atomic.Int32
	running   atomic.Bool
	connected chan struct{}
	closeCh   chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex // protects conn
	conn *websocket.Conn
}

func NewDispatcher(cfg DispatcherConfig, registry *Registry, opts ...Option) *Dispatcher {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultDispatcherConfig.ReconnectDelay
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultDispatcherConfig.HandshakeTimeout
	}
	return &Dispatcher{
		cfg:       cfg,
		registry:  registry,
		opts:      newOptions("events-dispatcher", opts),
		tracer:    otel.Tracer(tracerName),
		connected: make(chan struct{}, 1),
		closeCh:   make(chan struct{}),
	}
}

// State returns the current connection state.
func (d *Dispatcher) State() State { return State(d.state.Load()) }

// Connected receives a value each time a connection is established.
// Notifications are not queued: a reader that falls behind sees one.
func (d *Dispatcher) Connected() <-chan struct{} { return d.connected }

// Run connects and reads frames until ctx is cancelled or Close is called.
// Whenever the connection drops or a dial fails it waits ReconnectDelay and
// tries again, without limit. It returns nil after Close and ctx.Err() after
// cancellation.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer d.running.Store(false)

	select {
	case <-d.closeCh:
		return ErrClosed
	default:
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-d.closeCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	lg := d.opts.lg.WithKV("url", d.cfg.URL)
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			d.opts.rec.Reconnect()
		}
		err := d.session(runCtx, lg)
		if runCtx.Err() != nil {
			break
		}
		lg.Warn("Event channel closed, reconnecting", "error", err, "delay", d.cfg.ReconnectDelay)

		timer := time.NewTimer(d.cfg.ReconnectDelay)
		select {
		case <-runCtx.Done():
			timer.Stop()
		case <-timer.C:
		}
		if runCtx.Err() != nil {
			break
		}
	}

	lg.Info("Event channel stopped")
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// session dials once and reads until the connection fails or ctx is done.
func (d *Dispatcher) session(ctx context.Context, lg log.Logger) error {
	dialer := websocket.Dialer{HandshakeTimeout: d.cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, d.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDialingWebsocket, err)
	}

	d.mu.Lock()
	d.conn = conn
	d.mu.Unlock()
	d.setState(StateConnected)
	lg.Info("Event channel connected")

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer func() {
		stop()
		conn.Close()
		d.mu.Lock()
		d.conn = nil
		d.mu.Unlock()
		d.setState(StateDisconnected)
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrReadingMessage, err)
		}
		if messageType != websocket.TextMessage {
			continue
		}
		d.handleFrame(ctx, lg, string(data))
	}
}

func (d *Dispatcher) handleFrame(ctx context.Context, lg log.Logger, text string) {
	d.opts.rec.FrameReceived()

	frame, ok := ParseFrame(text)
	if !ok {
		d.opts.rec.FrameDropped(DropMalformed)
		lg.Debug("Ignoring malformed frame", "frame", text)
		return
	}

	ctx, span := d.tracer.Start(ctx, "events.dispatch", trace.WithAttributes(
		attribute.String("event.topic", frame.Topic),
		attribute.String("event.chain", frame.ChainID),
	))
	defer span.End()

	ctx = log.SetContextLogger(ctx, lg.WithKV("topic", frame.Topic))
	if err := d.registry.Dispatch(ctx, frame); err != nil {
		span.RecordError(err)
		lg.Debug("Event not dispatched", "topic", frame.Topic, "error", err)
	}
}

func (d *Dispatcher) setState(s State) {
	d.state.Store(int32(s))
	d.opts.rec.SetConnected(s == StateConnected)
	if s == StateConnected {
		select {
		case d.connected <- struct{}{}:
		default:
		}
	}
}

// Close stops Run and closes the open connection. It is safe to call more
// than once.
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() { close(d.closeCh) })

	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()
	if conn != nil {
		// Run may close it concurrently; the error carries no information.
		_ = conn.Close()
	}
	return nil
}
