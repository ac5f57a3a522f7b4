package browser

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamebrowser/internal/content"
)

type fakeQuerier struct {
	calls []string
}

func (q *fakeQuerier) IssueQuery(address string) {
	q.calls = append(q.calls, address)
}

type fixture struct {
	browser  *Browser
	querier  *fakeQuerier
	registry *content.Registry
	names    *content.NameStore
	rebuilds [][]string
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		querier:  &fakeQuerier{},
		registry: content.NewRegistry(),
		names:    content.NewNameStore(),
	}
	f.browser = New(cfg, Collaborators{
		Querier: f.querier,
		Content: f.registry,
		Names:   f.names,
		RebuildHostList: func(manual []string) {
			f.rebuilds = append(f.rebuilds, manual)
		},
	}, zap.NewNop())
	return f
}

func TestAddServerIdempotent(t *testing.T) {
	f := newFixture(t, Config{})

	first, err := f.browser.AddServer("example.com:4000")
	require.NoError(t, err)
	second, err := f.browser.AddServer("example.com")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, f.browser.Len())
	assert.True(t, first.Manual)
}

func TestAddServerBadAddress(t *testing.T) {
	f := newFixture(t, Config{})

	_, err := f.browser.AddServer("   ")
	assert.Error(t, err)
	assert.Equal(t, 0, f.browser.Len())
}

func TestAddServerRebuildsHostList(t *testing.T) {
	f := newFixture(t, Config{})

	_, err := f.browser.AddServer("one.example.com")
	require.NoError(t, err)
	_, err = f.browser.AddServer("two.example.com")
	require.NoError(t, err)

	require.Len(t, f.rebuilds, 2)
	assert.Equal(t, []string{"one.example.com:4000", "two.example.com:4000"}, f.rebuilds[1])

	// Re-adding an already-manual entry must not rebuild again.
	_, err = f.browser.AddServer("one.example.com")
	require.NoError(t, err)
	assert.Len(t, f.rebuilds, 2)
}

func TestConcurrentEnqueueNoLoss(t *testing.T) {
	f := newFixture(t, Config{})

	const producers = 32
	const perProducer = 25

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				address := fmt.Sprintf("10.0.%d.%d", p, i)
				f.browser.EnqueueDiscovered(address, "", false)
			}
		}(p)
	}
	wg.Wait()

	f.browser.Tick()
	assert.Equal(t, producers*perProducer, f.browser.Len())

	seen := 0
	f.browser.ForEach(func(*Server) { seen++ })
	assert.Equal(t, producers*perProducer, seen)
}

func TestMergeKeepsConfirmedEntry(t *testing.T) {
	f := newFixture(t, Config{})

	s, err := f.browser.AddServer("example.com")
	require.NoError(t, err)
	s.Info = Info{
		Name:              "Confirmed Server",
		VersionCompatible: true,
		Compatible:        true,
		Requirements:      []*Requirement{NewRequirement("aa11", "Base Pack")},
	}
	s.Online = true

	f.browser.EnqueueDiscovered("example.com", "Heard From A Peer", false)
	f.browser.Tick()

	assert.Equal(t, "Confirmed Server", s.Info.Name)
	assert.True(t, s.Online)
	assert.Len(t, s.Info.Requirements, 1)
}

func TestMergeAdoptsPlaceholderName(t *testing.T) {
	f := newFixture(t, Config{})

	s, err := f.browser.AddServer("example.com")
	require.NoError(t, err)
	// Never successfully queried, but carrying stale requirement data.
	s.Info.Requirements = []*Requirement{NewRequirement("aa11", "Stale Pack")}

	f.browser.EnqueueDiscovered("example.com", "Heard From A Peer", false)
	f.browser.Tick()

	assert.Equal(t, "Heard From A Peer", s.Info.Name)
	assert.Empty(t, s.Info.Requirements)
	assert.False(t, s.Online)
}

func TestMergeManualFlagMonotonic(t *testing.T) {
	f := newFixture(t, Config{})

	f.browser.EnqueueDiscovered("example.com", "", false)
	f.browser.Tick()
	s, ok := f.browser.byAddr["example.com:4000"]
	require.True(t, ok)
	assert.False(t, s.Manual)
	assert.Empty(t, f.rebuilds)

	f.browser.EnqueueDiscovered("example.com", "", true)
	f.browser.Tick()
	assert.True(t, s.Manual)
	assert.Len(t, f.rebuilds, 1)

	// Once manual, always manual; no further rebuilds either.
	f.browser.EnqueueDiscovered("example.com", "", false)
	f.browser.Tick()
	assert.True(t, s.Manual)
	assert.Len(t, f.rebuilds, 1)
}

func TestRemoveServer(t *testing.T) {
	f := newFixture(t, Config{})

	s, err := f.browser.AddServer("example.com")
	require.NoError(t, err)
	s.Info.Requirements = []*Requirement{NewRequirement("aa11", "Base Pack")}
	require.Len(t, f.rebuilds, 1)

	f.browser.RemoveServer(s)
	assert.Equal(t, 0, f.browser.Len())
	assert.Nil(t, s.Info.Requirements)
	// Removing a manual entry rebuilds the host list without it.
	require.Len(t, f.rebuilds, 2)
	assert.Empty(t, f.rebuilds[1])

	// Removing twice is harmless.
	f.browser.RemoveServer(s)
	assert.Len(t, f.rebuilds, 2)
}

func TestResponseAfterRemovalCreatesFreshEntry(t *testing.T) {
	f := newFixture(t, Config{})

	s, err := f.browser.AddServer("example.com")
	require.NoError(t, err)
	f.browser.RemoveServer(s)

	// The in-flight query answers after removal.
	f.browser.ReportResponse("example.com:4000", Info{
		Name:              "Back Again",
		VersionCompatible: true,
	})
	f.browser.Tick()

	fresh, ok := f.browser.byAddr["example.com:4000"]
	require.True(t, ok)
	assert.NotSame(t, s, fresh)
	assert.Equal(t, "Back Again", fresh.Info.Name)
	assert.True(t, fresh.Online)
	assert.False(t, fresh.Manual)
}

func TestFailureForUnknownAddressDropped(t *testing.T) {
	f := newFixture(t, Config{})

	f.browser.ReportFailure("gone.example.com:4000")
	f.browser.Tick()
	assert.Equal(t, 0, f.browser.Len())
}

func TestFailureMarksOffline(t *testing.T) {
	f := newFixture(t, Config{})

	s, err := f.browser.AddServer("example.com")
	require.NoError(t, err)
	s.Info.Name = "Confirmed Server"
	s.Online = true

	f.browser.ReportFailure("example.com:4000")
	f.browser.Tick()

	assert.False(t, s.Online)
	assert.Equal(t, "Confirmed Server", s.Info.Name)
}

func TestSnapshotTracksChanges(t *testing.T) {
	f := newFixture(t, Config{})

	assert.Empty(t, f.browser.Snapshot())

	_, err := f.browser.AddServer("example.com")
	require.NoError(t, err)
	f.browser.ReportResponse("example.com:4000", Info{
		Name:              "Confirmed Server",
		VersionCompatible: true,
		Requirements:      []*Requirement{NewRequirement("aa11", "Base Pack")},
	})
	f.browser.Tick()

	snap := f.browser.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "example.com:4000", snap[0].Address)
	assert.Equal(t, "Confirmed Server", snap[0].Name)
	assert.True(t, snap[0].Online)
	require.Len(t, snap[0].Requirements, 1)
	// Pack is not in the local registry, so the verdict is incompatible.
	assert.False(t, snap[0].Compatible)
	assert.Equal(t, StatusMissing, snap[0].Requirements[0].Status)
}
