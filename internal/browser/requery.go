package browser

import "go.uber.org/zap"

// Tick advances the scheduler by one loop iteration. It always drains the
// staging queue first, so servers discovered just before the tick take part
// in the same tick's requery pass. The requery pass itself only runs every
// RequeryEveryNTicks invocations.
//
// Requery policy, per server and per requery window: the retry counter
// always increments. Online servers are only refreshed once the counter
// reaches FullRefreshThreshold. Offline servers additionally get a query
// every window while the counter is below MaxShortRetries, then wait for
// the full-refresh point like everyone else. The counter resets only when
// a full refresh was actually due, so short-interval queries keep a server
// accumulating toward its full refresh.
func (b *Browser) Tick() {
	b.drainPending()

	b.requeryCnt++
	if b.requeryCnt < b.cfg.RequeryEveryNTicks {
		return
	}
	b.requeryCnt = 0

	for _, s := range b.servers {
		s.retries++
		if s.retries < b.cfg.FullRefreshThreshold &&
			(s.Online || s.retries >= b.cfg.MaxShortRetries) {
			continue
		}

		retries := s.retries
		b.log.Debug("requerying server",
			zap.String("address", s.Address), zap.Int("retries", retries))
		b.issueQuery(s.Address)
		if retries >= b.cfg.FullRefreshThreshold {
			s.retries = 0
		} else {
			s.retries = retries
		}
	}
}

func (b *Browser) issueQuery(address string) {
	if b.deps.Querier == nil {
		return
	}
	b.deps.Querier.IssueQuery(address)
}
