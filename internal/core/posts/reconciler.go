package posts

import (
	"log"
	"sync"
	"sync/atomic"
)

// ConnState tracks the change-feed subscription lifecycle.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Reconciler keeps the Repository consistent with concurrent remote
// mutations. The transport pushes ChangeEvents onto the Reconciler's
// channel via Submit; a single consumer goroutine applies them to the
// Repository in arrival order, which makes ordering and teardown
// explicit and testable without a network.
type Reconciler struct {
	repo      Reconciled
	events    chan ChangeEvent
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	state     atomic.Int32
}

// Reconciled is the surface the Reconciler needs from the Repository.
type Reconciled interface {
	Apply(ev ChangeEvent)
}

// eventBuffer absorbs bursts from the feed without blocking the
// transport's read loop.
const eventBuffer = 64

// NewReconciler creates a reconciler feeding the given repository and
// starts its consumer loop. Callers own teardown via Close.
func NewReconciler(repo Reconciled) *Reconciler {
	r := &Reconciler{
		repo:    repo,
		events:  make(chan ChangeEvent, eventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go r.run()
	return r
}

// Submit hands an event to the consumer loop. Returns false if the
// reconciler has been closed; the event is dropped in that case.
func (r *Reconciler) Submit(ev ChangeEvent) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

// run is the single consumer: events are applied strictly in the order
// they were submitted, and one malformed event never kills the loop.
func (r *Reconciler) run() {
	defer close(r.stopped)

	for {
		select {
		case <-r.done:
			return
		case ev := <-r.events:
			if err := ev.Valid(); err != nil {
				log.Printf("posts: dropping malformed change event: %v", err)
				continue
			}
			r.repo.Apply(ev)
		}
	}
}

// Close tears the reconciler down deterministically: no event submitted
// afterwards is delivered, and the consumer goroutine exits. Safe to
// call more than once.
func (r *Reconciler) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.state.Store(int32(StateDisconnected))
	})
	<-r.stopped
}

// SetState records the subscription state; the transport connector calls
// this around dial/teardown.
func (r *Reconciler) SetState(s ConnState) {
	r.state.Store(int32(s))
}

// State returns the current subscription state.
func (r *Reconciler) State() ConnState {
	return ConnState(r.state.Load())
}
