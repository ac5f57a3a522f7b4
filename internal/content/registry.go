// Package content indexes the asset packs available locally and the pack
// names learned from the network. Servers reference packs by fingerprint;
// the browser resolves those references against this registry to decide
// whether the local client can join.
package content

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Fingerprint identifies an asset pack by content hash, independent of its
// filename or where it was obtained.
type Fingerprint string

// Record describes one locally available asset pack.
type Record struct {
	Fingerprint Fingerprint `json:"fingerprint"`
	Name        string      `json:"name"`
	Filename    string      `json:"filename"`
	Description string      `json:"description"`
}

// Registry is the set of asset packs present on this machine. Safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	records map[Fingerprint]Record
}

func NewRegistry() *Registry {
	return &Registry{records: make(map[Fingerprint]Record)}
}

// Lookup returns the local record for a fingerprint, if any.
func (r *Registry) Lookup(fp Fingerprint) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[fp]
	return rec, ok
}

// Add registers a pack, replacing any previous record with the same
// fingerprint.
func (r *Registry) Add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Fingerprint] = rec
}

// Remove forgets a pack.
func (r *Registry) Remove(fp Fingerprint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, fp)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// ScanDir replaces the registry contents with the packs found in dir,
// fingerprinting each regular file by content hash. Returns the number of
// packs indexed.
func (r *Registry) ScanDir(dir string) (int, error) {
	found := make(map[Fingerprint]Record)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		fp, err := fingerprintFile(path)
		if err != nil {
			return err
		}

		base := d.Name()
		found[fp] = Record{
			Fingerprint: fp,
			Name:        strings.TrimSuffix(base, filepath.Ext(base)),
			Filename:    path,
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.records = found
	r.mu.Unlock()
	return len(found), nil
}

func fingerprintFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}
