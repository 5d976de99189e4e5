package session

import (
	"sync"

	"github.com/killallgit/labeler-api/internal/services/playback"
)

// ChangeKind identifies which part of the session state mutated
type ChangeKind string

const (
	// ChangeRegions means the committed region set changed
	ChangeRegions ChangeKind = "regions"
	// ChangeDraft means the draft lifecycle advanced
	ChangeDraft ChangeKind = "draft"
	// ChangeLoop means the playback or loop state changed
	ChangeLoop ChangeKind = "loop"
)

// Change is a notification fired synchronously after a mutation is applied
type Change struct {
	Kind ChangeKind `json:"kind"`
}

// notifier fans changes out to subscribed observers. Observers are snapshot
// before invocation and called without any session lock held, so an observer
// may mutate the session again; those nested mutations fire their own
// notifications before the outer notify returns.
type notifier struct {
	mu     sync.Mutex
	subs   map[int]func(Change)
	nextID int
}

func (n *notifier) subscribe(fn func(Change)) playback.Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func(Change))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return &observerSubscription{notifier: n, id: id}
}

func (n *notifier) notify(change Change) {
	n.mu.Lock()
	callbacks := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		callbacks = append(callbacks, fn)
	}
	n.mu.Unlock()

	for _, fn := range callbacks {
		fn(change)
	}
}

type observerSubscription struct {
	notifier *notifier
	id       int
	once     sync.Once
}

func (s *observerSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.mu.Lock()
		delete(s.notifier.subs, s.id)
		s.notifier.mu.Unlock()
	})
}
