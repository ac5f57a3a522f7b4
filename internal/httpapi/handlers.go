// Package httpapi exposes a read-only JSON view of the tracked server list.
// Handlers run on arbitrary goroutines, so they only ever read the
// browser's published snapshot, never its internal state.
package httpapi

import (
	"encoding/json"
	"net/http"
	"sort"

	"gamebrowser/internal/browser"
)

// SnapshotSource is the read side of the browser. Implemented by
// *browser.Browser.
type SnapshotSource interface {
	Snapshot() []browser.View
}

// WithCORS adds permissive CORS headers for browser-based UIs.
func WithCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// ServeServersAPI responds with the tracked servers in JSON, online servers
// first, otherwise in list order.
func ServeServersAPI(src SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The snapshot is shared; sort a copy.
		list := append([]browser.View(nil), src.Snapshot()...)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Online && !list[j].Online
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// NewMux wires the API routes.
func NewMux(src SnapshotSource) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/servers", WithCORS(ServeServersAPI(src)))
	return mux
}
