package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamebrowser/internal/browser"
)

type staticSource []browser.View

func (s staticSource) Snapshot() []browser.View { return s }

func TestServeServersAPI(t *testing.T) {
	src := staticSource{
		{Address: "a.example.com:4000", Name: "Offline First", Online: false},
		{Address: "b.example.com:4000", Name: "Online Second", Online: true},
		{Address: "c.example.com:4000", Name: "Online Third", Online: true},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
	NewMux(src).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var got []browser.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)

	// Online first, stable within each group.
	assert.Equal(t, "b.example.com:4000", got[0].Address)
	assert.Equal(t, "c.example.com:4000", got[1].Address)
	assert.Equal(t, "a.example.com:4000", got[2].Address)

	// The shared snapshot itself must not have been reordered.
	assert.Equal(t, "a.example.com:4000", src[0].Address)
}

func TestServeServersAPIOptions(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/servers", nil)
	NewMux(staticSource{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
