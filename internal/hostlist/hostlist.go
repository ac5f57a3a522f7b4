// Package hostlist persists the manually added server addresses, so they
// survive restarts. One address per line; the whole file is rewritten on
// every change.
package hostlist

import (
	"bytes"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

type List struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// New manages the host list file at path. An empty path disables
// persistence; Load and Rebuild become no-ops.
func New(path string, log *zap.Logger) *List {
	if log == nil {
		log = zap.NewNop()
	}
	return &List{path: path, log: log}
}

// Load reads the saved addresses. A missing file is an empty list, not an
// error.
func (l *List) Load() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var addrs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addrs = append(addrs, line)
	}
	return addrs, nil
}

// Rebuild replaces the saved list with the given addresses. The file is
// written atomically so a crash never leaves a half-written list.
func (l *List) Rebuild(addrs []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return nil
	}

	var buf bytes.Buffer
	for _, a := range addrs {
		buf.WriteString(a)
		buf.WriteByte('\n')
	}

	if err := atomic.WriteFile(l.path, &buf); err != nil {
		return err
	}
	l.log.Debug("rebuilt host list", zap.Int("servers", len(addrs)))
	return nil
}
