package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"nvm-manager/internal/nvm"
)

const DefaultURL = "https://nodejs.org/dist/index.json"

// Entry is one release from the remote index.
type Entry struct {
	Version    string
	NpmVersion string
	Date       string
	LTS        string
}

// NetworkError covers transport failures and non-2xx responses.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch versions from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a body that is not a JSON array of release objects.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse versions from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Fetcher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewFetcher(indexURL string, timeout time.Duration, logger *slog.Logger) Fetcher {
	if strings.TrimSpace(indexURL) == "" {
		indexURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Fetcher{
		URL:    indexURL,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

type indexRecord struct {
	Version string          `json:"version"`
	Npm     string          `json:"npm"`
	Date    string          `json:"date"`
	LTS     json.RawMessage `json:"lts"`
}

func (f Fetcher) Fetch(ctx context.Context) ([]Entry, error) {
	indexURL := f.URL
	if indexURL == "" {
		indexURL = DefaultURL
	}
	start := time.Now()
	b, err := f.fetchURL(ctx, indexURL)
	if err != nil {
		return nil, &NetworkError{URL: indexURL, Err: err}
	}
	entries, err := Parse(b)
	if err != nil {
		return nil, &ParseError{URL: indexURL, Err: err}
	}
	f.logger().Debug("catalog fetched", "url", indexURL, "entries", len(entries), "elapsed", time.Since(start))
	return entries, nil
}

// Parse decodes an index body. Records without npm get nvm.UnknownNpm.
func Parse(b []byte) ([]Entry, error) {
	var raw []indexRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("index is not an array")
	}
	out := make([]Entry, 0, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r.Version) == "" {
			return nil, fmt.Errorf("record %d has no version", i)
		}
		npm := r.Npm
		if npm == "" {
			npm = nvm.UnknownNpm
		}
		out = append(out, Entry{
			Version:    r.Version,
			NpmVersion: npm,
			Date:       r.Date,
			LTS:        ltsName(r.LTS),
		})
	}
	return out, nil
}

// ltsName maps the index "lts" field (false or a codename) to a string.
func ltsName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}
	return ""
}

func (f Fetcher) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") && !strings.HasPrefix(rawURL, "file://") {
		return os.ReadFile(rawURL)
	}
	if strings.HasPrefix(rawURL, "file://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(u.Path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", res.Status)
	}
	return io.ReadAll(res.Body)
}

func (f Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}
