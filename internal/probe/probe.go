// Package probe issues the UDP metadata queries the browser schedules.
// Queries are fire-and-forget: each runs on its own goroutine, paced by a
// shared rate limiter, and reports back through the browser's thread-safe
// staging path.
package probe

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gamebrowser/internal/browser"
)

// Sink receives query outcomes. Implemented by *browser.Browser.
type Sink interface {
	ReportResponse(address string, info browser.Info)
	ReportFailure(address string)
}

// Config carries the prober tunables.
type Config struct {
	// QueriesPerSecond paces outgoing queries across all servers.
	QueriesPerSecond float64 `mapstructure:"queries_per_second"`
	// Burst is the rate limiter burst size.
	Burst int `mapstructure:"burst"`
	// Timeout bounds the wait for a response datagram.
	Timeout time.Duration `mapstructure:"timeout"`
	// Version is the local game version; servers reporting a different one
	// are marked version-incompatible.
	Version string `mapstructure:"version"`
}

func (c Config) withDefaults() Config {
	if c.QueriesPerSecond == 0 {
		c.QueriesPerSecond = 8
	}
	if c.Burst == 0 {
		c.Burst = 4
	}
	if c.Timeout == 0 {
		c.Timeout = 3 * time.Second
	}
	return c
}

type Prober struct {
	cfg     Config
	log     *zap.Logger
	limiter *rate.Limiter
	sink    Sink
}

func New(cfg Config, log *zap.Logger) *Prober {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Prober{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.QueriesPerSecond), cfg.Burst),
	}
}

// Attach sets the result sink. Must be called before the first IssueQuery.
func (p *Prober) Attach(sink Sink) {
	p.sink = sink
}

// IssueQuery starts an asynchronous metadata query for a canonical address.
// Never blocks the caller.
func (p *Prober) IssueQuery(address string) {
	if p.sink == nil {
		return
	}
	go p.query(address)
}

func (p *Prober) query(address string) {
	if err := p.limiter.Wait(context.Background()); err != nil {
		return
	}

	conn, err := net.Dial("udp", address)
	if err != nil {
		p.log.Debug("query dial failed", zap.String("address", address), zap.Error(err))
		p.sink.ReportFailure(address)
		return
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(p.cfg.Timeout))
	if _, err := conn.Write([]byte(queryPacket)); err != nil {
		p.sink.ReportFailure(address)
		return
	}

	buffer := make([]byte, 4096)
	n, err := conn.Read(buffer)
	if err != nil || n == 0 {
		p.sink.ReportFailure(address)
		return
	}

	info, err := ParseInfoResponse(buffer[:n], p.cfg.Version)
	if err != nil {
		p.log.Debug("bad query response", zap.String("address", address), zap.Error(err))
		p.sink.ReportFailure(address)
		return
	}
	p.sink.ReportResponse(address, info)
}
