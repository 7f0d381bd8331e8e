package simulation

import (
	"sync"

	"transistor_bench/internal/models"
)

// Sink receives telemetry points as the engine evaluates candidates.
// Implementations must not block the producer.
type Sink interface {
	Emit(models.LiveDataPoint)
}

// Collector records points in emission order. It backs the synchronous
// pseudo-stream transport binding, where the caller replays the full series.
type Collector struct {
	points []models.LiveDataPoint
}

func (c *Collector) Emit(p models.LiveDataPoint) { c.points = append(c.points, p) }

// Points returns the recorded samples in emission order.
func (c *Collector) Points() []models.LiveDataPoint { return c.points }

// Stream is an unbounded sink decoupling the producing engine from a slow
// consumer: Emit appends and returns immediately, the consumer drains batches
// at its own cadence, waking on Ready. A consumer that stops draining costs
// memory, never producer stalls.
type Stream struct {
	mu     sync.Mutex
	buf    []models.LiveDataPoint
	closed bool
	ready  chan struct{}
}

func NewStream() *Stream {
	return &Stream{ready: make(chan struct{}, 1)}
}

// Emit never blocks: the buffer grows as needed and the ready signal
// collapses when the consumer is behind.
func (s *Stream) Emit(p models.LiveDataPoint) {
	s.mu.Lock()
	s.buf = append(s.buf, p)
	s.mu.Unlock()
	s.wake()
}

// Close marks the producing side done. Emit must not be called after Close.
func (s *Stream) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wake()
}

// Drain returns everything buffered since the previous drain, in emission
// order.
func (s *Stream) Drain() []models.LiveDataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.buf
	s.buf = nil
	return out
}

// Done reports whether the producer closed the stream and the buffer has been
// fully drained.
func (s *Stream) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed && len(s.buf) == 0
}

// Ready signals pending points or closure. The channel carries at most one
// pending wakeup; drain until Done after each receive.
func (s *Stream) Ready() <-chan struct{} { return s.ready }

func (s *Stream) wake() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}
