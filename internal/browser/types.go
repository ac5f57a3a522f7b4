// Package browser maintains the list of known multiplayer game servers.
//
// The list is owned by a single goroutine (the game loop): every structural
// change and every field mutation happens there. Discovery results arriving
// on network goroutines are staged through a lock-free queue and merged in
// on the next Tick, so producers never touch list state directly.
package browser

import "gamebrowser/internal/content"

// RequirementStatus is the per-requirement resolution state of a content
// pack a server declares.
type RequirementStatus string

const (
	// StatusUndetermined means the pack is present locally but has not been
	// validated against the server by a live connection yet.
	StatusUndetermined RequirementStatus = "undetermined"
	// StatusMissing means the pack is not available locally.
	StatusMissing RequirementStatus = "missing"
)

// Requirement is one content pack a server expects clients to have.
type Requirement struct {
	Fingerprint content.Fingerprint
	Name        string
	Filename    string
	Description string
	Status      RequirementStatus

	// fromServer marks the requirement as copied from a server's query
	// response rather than constructed locally. The compatibility pass
	// only operates on such copies.
	fromServer bool
}

// NewRequirement builds a requirement as declared by a server.
func NewRequirement(fp content.Fingerprint, name string) *Requirement {
	return &Requirement{
		Fingerprint: fp,
		Name:        name,
		Status:      StatusUndetermined,
		fromServer:  true,
	}
}

// Info is the last-known metadata snapshot for a server. The zero value is
// the placeholder state: no confirmed name, no requirements.
type Info struct {
	Name              string
	VersionCompatible bool
	Compatible        bool
	Requirements      []*Requirement
}

// Server is one tracked entry, keyed by canonical address. All fields are
// owned by the browser's goroutine; other goroutines must not retain a
// *Server across a Tick boundary.
type Server struct {
	Address string
	Info    Info
	Online  bool
	Manual  bool

	// retries counts requery windows since creation or since the last full
	// refresh was issued. See Tick for the cadence it drives.
	retries int
}

// Querier issues an asynchronous metadata query for a canonical address.
// The result comes back later through ReportResponse or ReportFailure.
type Querier interface {
	IssueQuery(address string)
}

// ContentIndex looks up locally available packs by fingerprint.
type ContentIndex interface {
	Lookup(fp content.Fingerprint) (content.Record, bool)
}

// NameIndex resolves display names for packs we do not have, and learns new
// ones from query responses.
type NameIndex interface {
	NameFor(fp content.Fingerprint) string
	Remember(fp content.Fingerprint, name string)
}

// Collaborators are the external services the browser drives. RebuildHostList
// receives the full set of manually added addresses whenever that set
// changes; a nil hook is ignored.
type Collaborators struct {
	Querier         Querier
	Content         ContentIndex
	Names           NameIndex
	RebuildHostList func(manual []string)
}

// Config carries the list's tunables. Zero fields take the production
// defaults below.
type Config struct {
	// DefaultPort completes connection strings that carry no port.
	DefaultPort uint16
	// RequeryEveryNTicks is the number of Ticks between requery windows.
	RequeryEveryNTicks int
	// MaxShortRetries caps the fast retries an offline server gets before
	// falling back to the full-refresh cadence.
	MaxShortRetries int
	// FullRefreshThreshold is the number of requery windows after which any
	// server gets a full metadata refresh.
	FullRefreshThreshold int
}

const (
	defaultPort          = 4000
	requeryEveryNTicks   = 60
	maxShortRetries      = 10
	fullRefreshThreshold = 50
)

func (c Config) withDefaults() Config {
	if c.DefaultPort == 0 {
		c.DefaultPort = defaultPort
	}
	if c.RequeryEveryNTicks == 0 {
		c.RequeryEveryNTicks = requeryEveryNTicks
	}
	if c.MaxShortRetries == 0 {
		c.MaxShortRetries = maxShortRetries
	}
	if c.FullRefreshThreshold == 0 {
		c.FullRefreshThreshold = fullRefreshThreshold
	}
	return c
}
