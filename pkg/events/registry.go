package events

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

type handlerFunc func(ctx context.Context, event any)

type topicEntry struct {
	eventType reflect.Type
	decode    func(c *Cursor) (any, error)
	handlers  []handlerFunc
}

// Registry maps event topics to their decoder and handlers.
// It is safe for concurrent use.
type Registry struct {
	opts   options
	mu     sync.RWMutex
	topics map[string]*topicEntry
}

func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:   newOptions("events", opts),
		topics: make(map[string]*topicEntry),
	}
}

// Register declares topic and the decoder that turns its fields into an E.
// Registering the same topic again with the same E replaces the decoder and
// keeps the handlers.
func Register[E any](r *Registry, topic string, decode func(c *Cursor) (E, error)) error {
	typ := reflect.TypeOf((*E)(nil)).Elem()
	wrapped := func(c *Cursor) (any, error) {
		ev, err := decode(c)
		if err == nil {
			err = c.Err()
		}
		return ev, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.topics[topic]; ok {
		if entry.eventType != typ {
			return fmt.Errorf("%w: %s is %s, not %s", ErrTopicRegistered, topic, entry.eventType, typ)
		}
		entry.decode = wrapped
		return nil
	}
	r.topics[topic] = &topicEntry{eventType: typ, decode: wrapped}
	return nil
}

// Handle appends handler to the handlers of topic. Handlers run in the
// order they were added.
func Handle[E any](r *Registry, topic string, handler func(ctx context.Context, event E)) error {
	typ := reflect.TypeOf((*E)(nil)).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.topics[topic]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	if entry.eventType != typ {
		return fmt.Errorf("%w: %s is %s, not %s", ErrTopicRegistered, topic, entry.eventType, typ)
	}
	entry.handlers = append(entry.handlers, func(ctx context.Context, event any) {
		handler(ctx, event.(E))
	})
	return nil
}

// Topics returns the number of registered topics.
func (r *Registry) Topics() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics)
}

// DispatchText parses text and dispatches it. Malformed frames are dropped
// silently.
func (r *Registry) DispatchText(ctx context.Context, text string) error {
	frame, ok := ParseFrame(text)
	if !ok {
		r.opts.rec.FrameDropped(DropMalformed)
		r.opts.lg.Debug("Malformed frame", "frame", text)
		return nil
	}
	return r.Dispatch(ctx, frame)
}

// Dispatch decodes frame and runs the handlers of its topic. Frames with an
// unknown topic belong to other contracts on the same channel and are
// dropped silently. Fields that fail to decode drop the event and are the
// only error returned.
func (r *Registry) Dispatch(ctx context.Context, frame Frame) error {
	r.mu.RLock()
	entry, ok := r.topics[frame.Topic]
	var decode func(*Cursor) (any, error)
	var handlers []handlerFunc
	if ok {
		decode = entry.decode
		handlers = entry.handlers
	}
	r.mu.RUnlock()

	if !ok {
		r.opts.rec.FrameDropped(DropUnknownTopic)
		r.opts.lg.Debug("Ignoring frame for unknown topic", "topic", frame.Topic)
		return nil
	}

	event, err := decode(NewCursor(frame.Fields))
	if err != nil {
		r.opts.rec.FrameDropped(DropDecodeError)
		r.opts.lg.Warn("Dropping undecodable event", "topic", frame.Topic, "fields", frame.Fields, "error", err)
		return err
	}

	for _, h := range handlers {
		r.invoke(ctx, frame.Topic, h, event)
	}
	r.opts.rec.EventDispatched(frame.Topic)
	return nil
}

func (r *Registry) invoke(ctx context.Context, topic string, h handlerFunc, event any) {
	defer func() {
		if p := recover(); p != nil {
			r.opts.rec.HandlerPanicked(topic)
			r.opts.lg.Error("Event handler panicked", "topic", topic, "panic", p)
		}
	}()
	h(ctx, event)
}
