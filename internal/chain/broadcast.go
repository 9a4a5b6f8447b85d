package chain

import "sync"

// TipBroadcaster fans the current main branch out to subscribers with
// latest-value-only semantics: a slow subscriber never queues intermediate
// tips, it just sees the newest one when it next reads. Emissions to any
// one subscriber are monotonic in chain length because main-branch selection
// never moves to a shorter branch.
type TipBroadcaster struct {
	mu      sync.Mutex
	subs    map[*TipSubscription]struct{}
	current *Branch
}

// NewTipBroadcaster builds an empty broadcaster.
func NewTipBroadcaster() *TipBroadcaster {
	return &TipBroadcaster{subs: make(map[*TipSubscription]struct{})}
}

// Publish replaces the current tip and offers it to every subscriber.
func (b *TipBroadcaster) Publish(br Branch) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = &br
	for sub := range b.subs {
		sub.offer(br)
	}
}

// Subscribe registers a new subscriber. The current tip, if any, is
// delivered immediately so a late subscriber does not wait for the next
// change.
func (b *TipBroadcaster) Subscribe() *TipSubscription {
	sub := &TipSubscription{
		b:  b,
		ch: make(chan Branch, 1),
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[sub] = struct{}{}
	if b.current != nil {
		sub.offer(*b.current)
	}
	return sub
}

// TipSubscription is one subscriber's view of the tip stream.
type TipSubscription struct {
	b    *TipBroadcaster
	ch   chan Branch
	once sync.Once
}

// C is the receive channel. It carries at most one pending tip; the channel
// is closed by Close.
func (s *TipSubscription) C() <-chan Branch {
	return s.ch
}

// Close unregisters the subscription and closes its channel.
func (s *TipSubscription) Close() {
	s.once.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs, s)
		s.b.mu.Unlock()
		close(s.ch)
	})
}

// offer replaces any undelivered tip with the newer one. Callers hold the
// broadcaster lock, so offers never race each other.
func (s *TipSubscription) offer(br Branch) {
	for {
		select {
		case s.ch <- br:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
