package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nvm-manager/internal/catalog"
)

type fakeProbe struct {
	version string
	err     error
}

func (f fakeProbe) Binary() string { return "nvm" }

func (f fakeProbe) Version(context.Context) (string, error) { return f.version, f.err }

type fakeCatalog struct {
	entries []catalog.Entry
	err     error
}

func (f fakeCatalog) Fetch(context.Context) ([]catalog.Entry, error) { return f.entries, f.err }

func withLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	prev := lookPath
	lookPath = fn
	t.Cleanup(func() { lookPath = prev })
}

func TestCheckAllHealthy(t *testing.T) {
	withLookPath(t, func(name string) (string, error) { return "/usr/local/bin/" + name, nil })

	report := Check(context.Background(), fakeProbe{version: "0.39.7"}, fakeCatalog{entries: make([]catalog.Entry, 3)})

	require.True(t, report.OK())
	require.NoError(t, report.Err())
	require.Len(t, report.Results, 3)
	assert.Equal(t, "/usr/local/bin/nvm", report.Results[0].Detail)
	assert.Equal(t, "0.39.7", report.Results[1].Detail)
	assert.Equal(t, "3 releases", report.Results[2].Detail)
}

func TestCheckMissingBinarySkipsVersionProbe(t *testing.T) {
	withLookPath(t, func(string) (string, error) { return "", errors.New("not found") })

	report := Check(context.Background(), fakeProbe{version: "x"}, nil)

	require.False(t, report.OK())
	require.Len(t, report.Results, 1)
	assert.Contains(t, report.Results[0].Detail, `missing dependency "nvm" in PATH`)
	assert.ErrorContains(t, report.Err(), "doctor found 1 problem(s)")
}

func TestCheckReportsVersionAndCatalogFailures(t *testing.T) {
	withLookPath(t, func(name string) (string, error) { return name, nil })

	report := Check(context.Background(),
		fakeProbe{err: errors.New("boom")},
		fakeCatalog{err: errors.New("offline")})

	require.False(t, report.OK())
	assert.Contains(t, report.Results[1].Detail, "nvm version failed: boom")
	assert.Equal(t, "offline", report.Results[2].Detail)
	assert.ErrorContains(t, report.Err(), "doctor found 2 problem(s)")
}
