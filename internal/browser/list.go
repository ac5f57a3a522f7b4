package browser

import (
	"sync/atomic"

	"go.uber.org/zap"

	"gamebrowser/internal/addr"
)

// Browser is the tracked-server list and its staging queue. See the package
// comment for the ownership rules.
type Browser struct {
	cfg  Config
	deps Collaborators
	log  *zap.Logger

	// servers holds entries in encounter order, which is the display order.
	// byAddr indexes the same entries by canonical address.
	servers []*Server
	byAddr  map[string]*Server

	queue      insertQueue
	requeryCnt int

	view atomic.Pointer[[]View]
}

// New creates an empty browser. The caller's goroutine becomes the owning
// loop: AddServer, RemoveServer, Tick and OnLocalContentChanged must only be
// called from it.
func New(cfg Config, deps Collaborators, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Browser{
		cfg:    cfg.withDefaults(),
		deps:   deps,
		log:    log,
		byAddr: make(map[string]*Server),
	}
	b.publish()
	return b
}

// AddServer registers an address the user typed in and returns its entry.
// Adding an address that is already tracked returns the existing entry; the
// entry is marked manually added either way.
func (b *Browser) AddServer(connectionString string) (*Server, error) {
	s, err := b.findOrCreate(connectionString)
	if err != nil {
		return nil, err
	}
	if !s.Manual {
		s.Manual = true
		b.rebuildHostList()
		b.publish()
	}
	return s, nil
}

// findOrCreate canonicalizes the connection string, then returns the
// matching entry or appends a fresh placeholder one.
func (b *Browser) findOrCreate(connectionString string) (*Server, error) {
	canonical, err := addr.Canonicalize(connectionString, b.cfg.DefaultPort)
	if err != nil {
		return nil, err
	}

	if s, ok := b.byAddr[canonical]; ok {
		return s, nil
	}

	s := &Server{Address: canonical}
	b.servers = append(b.servers, s)
	b.byAddr[canonical] = s

	b.log.Debug("added server to list", zap.String("address", canonical))
	b.publish()
	return s, nil
}

// RemoveServer detaches an entry. Its requirement list is dropped with it;
// a query already in flight for the address is harmless, the late result
// just re-creates a placeholder entry.
func (b *Browser) RemoveServer(s *Server) {
	if _, ok := b.byAddr[s.Address]; !ok {
		return
	}

	delete(b.byAddr, s.Address)
	for i, cur := range b.servers {
		if cur == s {
			b.servers = append(b.servers[:i], b.servers[i+1:]...)
			break
		}
	}
	s.Info.Requirements = nil

	b.log.Debug("removed server from list", zap.String("address", s.Address))
	if s.Manual {
		b.rebuildHostList()
	}
	b.publish()
}

// Len reports the number of tracked servers. Owning loop only.
func (b *Browser) Len() int {
	return len(b.servers)
}

// ForEach visits every tracked entry in display order. The callback must
// not add or remove entries.
func (b *Browser) ForEach(fn func(*Server)) {
	for _, s := range b.servers {
		fn(s)
	}
}

// EnqueueDiscovered stages a server learned about from the network. Safe to
// call from any goroutine; never blocks. partialName may be empty, it is
// whatever name the discovering side already knows (e.g. from a peer's
// server list). manual marks addresses the user asked for through an
// asynchronous path.
func (b *Browser) EnqueueDiscovered(connectionString, partialName string, manual bool) {
	b.queue.push(&pending{
		kind:    kindDiscovery,
		address: connectionString,
		name:    partialName,
		manual:  manual,
	})
}

// ReportResponse stages a completed metadata query for a canonical address.
// Safe to call from any goroutine.
func (b *Browser) ReportResponse(address string, info Info) {
	b.queue.push(&pending{
		kind:    kindResponse,
		address: address,
		info:    &info,
	})
}

// ReportFailure stages a query timeout for a canonical address. Safe to
// call from any goroutine.
func (b *Browser) ReportFailure(address string) {
	b.queue.push(&pending{
		kind:    kindFailure,
		address: address,
	})
}

// drainPending merges every staged event into the list. Owning loop only.
func (b *Browser) drainPending() {
	it := b.queue.drain()
	for it != nil {
		next := it.next
		it.next = nil

		switch it.kind {
		case kindDiscovery:
			b.mergeDiscovery(it)
		case kindResponse:
			b.applyResponse(it)
		case kindFailure:
			b.applyFailure(it)
		}
		it = next
	}
}

// mergeDiscovery folds a staged discovery into the list. An entry that has
// never produced a confirmed name is reset to a clean placeholder carrying
// the discovered name; an entry with live data keeps it untouched. The
// manual flag only ever turns on.
func (b *Browser) mergeDiscovery(it *pending) {
	s, err := b.findOrCreate(it.address)
	if err != nil {
		b.log.Debug("dropping discovery with bad address",
			zap.String("address", it.address), zap.Error(err))
		return
	}

	if s.Info.Name == "" {
		// Placeholder entry: throw away any stale requirement data and
		// adopt the name we heard. Still unconfirmed, so offline.
		s.Info = Info{Name: it.name}
		s.Online = false
	}

	if it.manual && !s.Manual {
		s.Manual = true
		b.rebuildHostList()
	}
	b.publish()
}

// applyResponse overwrites an entry with freshly queried metadata. Identity
// and the retry counter are kept; everything else is replaced, then the
// requirement list is resolved against the local registry.
func (b *Browser) applyResponse(it *pending) {
	s, err := b.findOrCreate(it.address)
	if err != nil {
		return
	}

	s.Info.Requirements = nil
	s.Info = *it.info
	s.Online = true

	b.rememberNames(s)
	b.resolveServer(s)
	b.publish()
}

// applyFailure marks a known entry offline. A failure for an address we no
// longer track is dropped; unlike a response it carries nothing worth
// creating an entry for.
func (b *Browser) applyFailure(it *pending) {
	s, ok := b.byAddr[it.address]
	if !ok {
		return
	}
	s.Online = false
	b.publish()
}

// rememberNames feeds requirement names from a response into the gossip
// name store, so packs we lack still display properly everywhere.
func (b *Browser) rememberNames(s *Server) {
	if b.deps.Names == nil {
		return
	}
	for _, c := range s.Info.Requirements {
		b.deps.Names.Remember(c.Fingerprint, c.Name)
	}
}

func (b *Browser) rebuildHostList() {
	if b.deps.RebuildHostList == nil {
		return
	}
	manual := make([]string, 0, len(b.servers))
	for _, s := range b.servers {
		if s.Manual {
			manual = append(manual, s.Address)
		}
	}
	b.deps.RebuildHostList(manual)
}
