package browser

import "gamebrowser/internal/content"

// OnLocalContentChanged re-resolves every tracked server's requirements
// against the local content registry. Call it after the set of locally
// available packs changes (a rescan found new packs, or packs were
// removed); it is idempotent between such changes.
func (b *Browser) OnLocalContentChanged() {
	for _, s := range b.servers {
		b.resolveServer(s)
	}
	b.publish()
}

// resolveServer recomputes one server's compatibility verdict. The verdict
// starts from the version check the last query established and can only be
// downgraded by a missing pack, never upgraded past it.
func (b *Browser) resolveServer(s *Server) {
	s.Info.Compatible = s.Info.VersionCompatible

	for _, c := range s.Info.Requirements {
		if !c.fromServer {
			// Requirement lists on tracked servers are copies built from
			// query responses; anything else is a caller bug.
			panic("browser: compatibility pass over a requirement not copied from a server")
		}

		rec, found := b.lookupContent(c)
		if !found {
			// We do not have the pack. Another server may already have
			// told us its name, show that instead of the fingerprint.
			if b.deps.Names != nil {
				c.Name = b.deps.Names.NameFor(c.Fingerprint)
			}
			c.Status = StatusMissing
			s.Info.Compatible = false
			continue
		}

		c.Filename = rec.Filename
		c.Name = rec.Name
		c.Description = rec.Description
		c.Status = StatusUndetermined
	}
}

func (b *Browser) lookupContent(c *Requirement) (rec content.Record, found bool) {
	if b.deps.Content == nil {
		return rec, false
	}
	return b.deps.Content.Lookup(c.Fingerprint)
}
