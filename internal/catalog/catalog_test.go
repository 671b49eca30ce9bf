package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `[
  {"version":"v21.0.0","date":"2023-10-17","npm":"10.2.0","lts":false},
  {"version":"v20.9.0","date":"2023-10-24","npm":"10.1.0","lts":"Iron"},
  {"version":"v0.1.14","date":"2011-08-26","lts":false}
]`

func TestFetchParsesIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	entries, err := NewFetcher(srv.URL, time.Second, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Version: "v21.0.0", NpmVersion: "10.2.0", Date: "2023-10-17"}, entries[0])
	assert.Equal(t, "Iron", entries[1].LTS)
	assert.Equal(t, "unknown", entries[2].NpmVersion)
}

func TestFetchHTTPStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, time.Second, nil).Fetch(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "got %v", err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(url, time.Second, nil).Fetch(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestFetchInvalidJSONIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, time.Second, nil).Fetch(context.Background())
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseRejectsWrongShape(t *testing.T) {
	_, err := Parse([]byte(`{"version":"v1.0.0"}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[{"npm":"1.0.0"}]`))
	assert.ErrorContains(t, err, "no version")

	_, err = Parse([]byte(`null`))
	assert.ErrorContains(t, err, "not an array")

	_, err = Parse([]byte(`[{"version":"v20.9.0","npm":"10.1.0"}] <html>oops</html>`))
	assert.Error(t, err, "trailing data after the array")
}

func TestFetchFromFilePath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(p, []byte(sampleIndex), 0o644))

	entries, err := NewFetcher(p, 0, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = NewFetcher("file://"+p, 0, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
