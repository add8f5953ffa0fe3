package events_test

import "sync"

type countingRecorder struct {
	mu         sync.Mutex
	connected  bool
	reconnects int
	received   int
	dropped    map[string]int
	dispatched map[string]int
	panics     map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		dropped:    make(map[string]int),
		dispatched: make(map[string]int),
		panics:     make(map[string]int),
	}
}

func (r *countingRecorder) SetConnected(c bool) { r.mu.Lock(); r.connected = c; r.mu.Unlock() }
func (r *countingRecorder) Reconnect()          { r.mu.Lock(); r.reconnects++; r.mu.Unlock() }
func (r *countingRecorder) FrameReceived()      { r.mu.Lock(); r.received++; r.mu.Unlock() }

func (r *countingRecorder) FrameDropped(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped[reason]++
}

func (r *countingRecorder) EventDispatched(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched[topic]++
}

func (r *countingRecorder) HandlerPanicked(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics[topic]++
}

func (r *countingRecorder) snapshot(f func(r *countingRecorder)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f(r)
}
