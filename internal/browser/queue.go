package browser

import "sync/atomic"

type pendingKind uint8

const (
	// kindDiscovery is a server learned about from the network: an address
	// plus at most a name heard from a peer.
	kindDiscovery pendingKind = iota
	// kindResponse is a completed metadata query.
	kindResponse
	// kindFailure is a query that got no answer.
	kindFailure
)

// pending is one staged event awaiting the owning loop. Ownership follows
// the item: the producing goroutine owns it until push, the queue owns it
// until drain, the owning loop owns it after.
type pending struct {
	next *pending

	kind    pendingKind
	address string
	name    string
	manual  bool
	info    *Info
}

// insertQueue is a lock-free multi-producer single-consumer stack. Producers
// push concurrently from any goroutine; only the owning loop drains. Push
// order across producers is not preserved, which drain callers must not
// rely on.
type insertQueue struct {
	head atomic.Pointer[pending]
}

// push links the item onto the stack. Non-blocking: the CAS loop only
// retries when another producer won the race for the head.
func (q *insertQueue) push(it *pending) {
	for {
		old := q.head.Load()
		it.next = old
		if q.head.CompareAndSwap(old, it) {
			return
		}
	}
}

// drain atomically detaches the whole chain and returns its head, or nil.
// Items pushed concurrently with a drain land either in this chain or on
// the fresh stack for a later drain; nothing is lost or delivered twice.
func (q *insertQueue) drain() *pending {
	return q.head.Swap(nil)
}
