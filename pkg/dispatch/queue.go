package dispatch

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/go-drift/ringview/pkg/animation"
	"github.com/go-drift/ringview/pkg/errors"
)

// Kind identifies a message type. Remove and Has operate per kind.
type Kind int

// Message is a unit of work delivered to a Handler.
type Message struct {
	// Kind selects how the handler interprets the message.
	Kind Kind
	// Payload carries optional command data.
	Payload any
	// Sent is the clock reading when the message was enqueued.
	Sent time.Time
	// When is the earliest time the message may be delivered.
	When time.Time
	// Delivered is the clock reading when the consumer dequeued the message.
	Delivered time.Time

	seq uint64
}

// Handler consumes messages on the queue's consumer goroutine.
type Handler interface {
	Handle(msg Message)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(msg Message)

// Handle calls f(msg).
func (f HandlerFunc) Handle(msg Message) { f(msg) }

// Option configures a Queue.
type Option func(*Queue)

// WithClock sets the time source used for delays and timestamps.
func WithClock(c animation.Clock) Option {
	return func(q *Queue) {
		if c != nil {
			q.clock = c
		}
	}
}

// Queue is a thread-safe, time-ordered message queue with a single consumer.
type Queue struct {
	handler Handler
	clock   animation.Clock

	mu      sync.Mutex
	pending messageHeap
	seq     uint64
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// New creates a queue delivering to h.
func New(h Handler, opts ...Option) *Queue {
	q := &Queue{
		handler: h,
		clock:   animation.SystemClock,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Clock returns the queue's time source.
func (q *Queue) Clock() animation.Clock {
	return q.clock
}

// Send enqueues a message for delivery as soon as possible.
// Returns false if the queue is closed.
func (q *Queue) Send(kind Kind, payload any) bool {
	return q.SendDelayed(kind, payload, 0)
}

// SendDelayed enqueues a message for delivery no earlier than now+delay.
// Negative delays are treated as zero. Returns false if the queue is closed.
func (q *Queue) SendDelayed(kind Kind, payload any, delay time.Duration) bool {
	if delay < 0 {
		delay = 0
	}
	now := q.clock.Now()

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.seq++
	heap.Push(&q.pending, &Message{
		Kind:    kind,
		Payload: payload,
		Sent:    now,
		When:    now.Add(delay),
		seq:     q.seq,
	})
	q.mu.Unlock()

	q.signal()
	return true
}

// Remove cancels every pending message of the given kind and returns how many
// were removed.
func (q *Queue) Remove(kind Kind) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.pending[:0]
	removed := 0
	for _, m := range q.pending {
		if m.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(q.pending); i++ {
		q.pending[i] = nil
	}
	q.pending = kept
	if removed > 0 {
		heap.Init(&q.pending)
	}
	return removed
}

// Has reports whether a message of the given kind is pending.
func (q *Queue) Has(kind Kind) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, m := range q.pending {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// Len returns the number of pending messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Next returns the delivery time of the earliest pending message.
func (q *Queue) Next() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return time.Time{}, false
	}
	return q.pending[0].When, true
}

// Close drops all pending messages and rejects further sends.
// A running Run loop returns. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.pending = nil
	q.mu.Unlock()
	close(q.done)
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// RunDue delivers, in order, every message due at the current clock reading,
// including messages that become due while earlier ones are handled. It
// returns the number of messages delivered.
//
// RunDue must only be called from the consumer: either drive the queue with
// RunDue or with Run, never both at once.
func (q *Queue) RunDue() int {
	delivered := 0
	for {
		msg, ok := q.popDue()
		if !ok {
			return delivered
		}
		q.deliver(msg)
		delivered++
	}
}

// Run consumes messages until ctx is done or the queue is closed.
// It returns ctx.Err() on cancellation and nil on Close.
func (q *Queue) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		q.RunDue()

		var timeout <-chan time.Time
		if next, ok := q.Next(); ok {
			wait := next.Sub(q.clock.Now())
			if wait <= 0 {
				continue
			}
			timer.Reset(wait)
			timeout = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case <-q.wake:
		case <-timeout:
		}
		timer.Stop()
	}
}

func (q *Queue) popDue() (Message, bool) {
	now := q.clock.Now()

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || len(q.pending) == 0 || q.pending[0].When.After(now) {
		return Message{}, false
	}
	msg := heap.Pop(&q.pending).(*Message)
	msg.Delivered = now
	return *msg, true
}

func (q *Queue) deliver(msg Message) {
	defer errors.Recover("dispatch.Handle")
	q.handler.Handle(msg)
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// messageHeap orders messages by delivery time, then by enqueue order.
type messageHeap []*Message

func (h messageHeap) Len() int { return len(h) }

func (h messageHeap) Less(i, j int) bool {
	if h[i].When.Equal(h[j].When) {
		return h[i].seq < h[j].seq
	}
	return h[i].When.Before(h[j].When)
}

func (h messageHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *messageHeap) Push(x any) { *h = append(*h, x.(*Message)) }

func (h *messageHeap) Pop() any {
	old := *h
	n := len(old)
	m := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return m
}
