package content

import "sync"

// UnknownName is the display placeholder for a pack we neither have nor have
// heard a name for.
const UnknownName = "<unknown>"

// NameStore remembers human-readable pack names learned from the network.
// A server may declare a pack we do not have while another server has
// already told us what that pack is called; the browser then shows the
// learned name instead of a bare fingerprint. Safe for concurrent use.
type NameStore struct {
	mu    sync.RWMutex
	names map[Fingerprint]string
}

func NewNameStore() *NameStore {
	return &NameStore{names: make(map[Fingerprint]string)}
}

// Remember records a name for a fingerprint. The first non-empty name wins;
// later gossip never overwrites it.
func (n *NameStore) Remember(fp Fingerprint, name string) {
	if name == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.names[fp]; !ok {
		n.names[fp] = name
	}
}

// NameFor returns the learned name for a fingerprint, or UnknownName.
func (n *NameStore) NameFor(fp Fingerprint) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if name, ok := n.names[fp]; ok {
		return name
	}
	return UnknownName
}
