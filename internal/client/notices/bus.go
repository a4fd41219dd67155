// Package notices implements a process-wide bus of transient user-facing
// messages. Any component may raise a notice; each notice expires on its own
// timer or when dismissed explicitly. Views subscribe to render the current
// list; the bus is the sole owner of that list.
package notices

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Kind classifies a notice for presentation.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// DefaultTTL mirrors the platform's usual toast duration.
const DefaultTTL = 3 * time.Second

// Notice is a single transient message. IDs are unique and monotonically
// increasing for the lifetime of the bus.
type Notice struct {
	ID        int64
	Message   string
	Kind      Kind
	CreatedAt time.Time
	TTL       time.Duration
}

// Listener observes the current notice list after every change.
type Listener func([]Notice)

type Bus struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	defaultTTL time.Duration

	nextID     int64
	notices    []Notice
	timers     map[int64]clockwork.Timer
	listeners  map[int64]Listener
	nextListID int64
}

// New constructs a Bus. Pass clockwork.NewRealClock() in production and a
// fake clock in tests so expiry is testable without wall-clock waits.
func New(clock clockwork.Clock, defaultTTL time.Duration) *Bus {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Bus{
		clock:      clock,
		defaultTTL: defaultTTL,
		timers:     make(map[int64]clockwork.Timer),
		listeners:  make(map[int64]Listener),
	}
}

// Raise appends a notice with the bus default TTL and returns its id.
func (b *Bus) Raise(message string, kind Kind) int64 {
	return b.RaiseTTL(message, kind, b.defaultTTL)
}

// RaiseTTL appends a notice expiring after ttl. A non-positive ttl makes the
// notice sticky: it stays until dismissed.
func (b *Bus) RaiseTTL(message string, kind Kind, ttl time.Duration) int64 {
	b.mu.Lock()

	b.nextID++
	id := b.nextID
	b.notices = append(b.notices, Notice{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: b.clock.Now(),
		TTL:       ttl,
	})

	if ttl > 0 {
		b.timers[id] = b.clock.AfterFunc(ttl, func() { b.remove(id) })
	}

	snapshot, listeners := b.snapshotLocked()
	b.mu.Unlock()

	notify(listeners, snapshot)
	return id
}

// Dismiss removes the notice immediately. Dismissing an expired or unknown
// id is a no-op; other notices' timers are unaffected.
func (b *Bus) Dismiss(id int64) {
	b.remove(id)
}

// Subscribe registers a listener and returns its unsubscribe function.
// The listener is immediately invoked with the current list.
func (b *Bus) Subscribe(fn Listener) func() {
	b.mu.Lock()
	b.nextListID++
	id := b.nextListID
	b.listeners[id] = fn
	snapshot := activeLocked(b.notices)
	b.mu.Unlock()

	fn(snapshot)

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Active returns a copy of the current notice list in raise order.
func (b *Bus) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return activeLocked(b.notices)
}

func (b *Bus) remove(id int64) {
	b.mu.Lock()

	idx := -1
	for i, n := range b.notices {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return
	}

	b.notices = append(b.notices[:idx], b.notices[idx+1:]...)
	if timer, ok := b.timers[id]; ok {
		timer.Stop()
		delete(b.timers, id)
	}

	snapshot, listeners := b.snapshotLocked()
	b.mu.Unlock()

	notify(listeners, snapshot)
}

func (b *Bus) snapshotLocked() ([]Notice, []Listener) {
	listeners := make([]Listener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	return activeLocked(b.notices), listeners
}

func activeLocked(notices []Notice) []Notice {
	return append([]Notice(nil), notices...)
}

func notify(listeners []Listener, snapshot []Notice) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
