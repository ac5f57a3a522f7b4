package browser

import "gamebrowser/internal/content"

// RequirementView is the read-only projection of one content requirement.
type RequirementView struct {
	Fingerprint content.Fingerprint `json:"fingerprint"`
	Name        string              `json:"name"`
	Status      RequirementStatus   `json:"status"`
}

// View is the read-only projection of one tracked server, safe to hand to
// other goroutines.
type View struct {
	Address      string            `json:"address"`
	Name         string            `json:"name"`
	Online       bool              `json:"online"`
	Manual       bool              `json:"manual"`
	Compatible   bool              `json:"compatible"`
	Requirements []RequirementView `json:"requirements,omitempty"`
}

// Snapshot returns the most recently published view of the list. Safe to
// call from any goroutine; the returned slice is immutable.
func (b *Browser) Snapshot() []View {
	p := b.view.Load()
	if p == nil {
		return nil
	}
	return *p
}

// publish rebuilds the shared snapshot after any visible change. This is
// how list changes reach the UI without it ever touching loop-owned state.
func (b *Browser) publish() {
	views := make([]View, 0, len(b.servers))
	for _, s := range b.servers {
		v := View{
			Address:    s.Address,
			Name:       s.Info.Name,
			Online:     s.Online,
			Manual:     s.Manual,
			Compatible: s.Info.Compatible,
		}
		for _, c := range s.Info.Requirements {
			v.Requirements = append(v.Requirements, RequirementView{
				Fingerprint: c.Fingerprint,
				Name:        c.Name,
				Status:      c.Status,
			})
		}
		views = append(views, v)
	}
	b.view.Store(&views)
}
