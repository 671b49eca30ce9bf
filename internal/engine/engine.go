// Package engine reconciles the versions installed by the external version
// manager with the remote release catalog and runs mutating commands against
// the manager. Every operation returns a result envelope; errors from the
// manager or the catalog never escape as Go errors.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"nvm-manager/internal/catalog"
	"nvm-manager/internal/nvm"
	"nvm-manager/internal/versions"
)

type VersionManager interface {
	Install(ctx context.Context, version string) error
	Uninstall(ctx context.Context, version string) error
	Use(ctx context.Context, version string) error
	List(ctx context.Context) ([]nvm.InstalledVersion, error)
	ListRemote(ctx context.Context) ([]nvm.AvailableVersion, error)
}

type CatalogSource interface {
	Fetch(ctx context.Context) ([]catalog.Entry, error)
}

type ActionResult struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

type InstalledResult struct {
	Success  bool                   `json:"success" yaml:"success"`
	Versions []nvm.InstalledVersion `json:"versions" yaml:"versions"`
	Message  string                 `json:"message,omitempty" yaml:"message,omitempty"`
}

// AvailableResult.Degraded is set when the list came from `ls-remote`
// because the catalog could not be fetched.
type AvailableResult struct {
	Success  bool                   `json:"success" yaml:"success"`
	Versions []nvm.AvailableVersion `json:"versions" yaml:"versions"`
	Degraded bool                   `json:"degraded,omitempty" yaml:"degraded,omitempty"`
	Message  string                 `json:"message,omitempty" yaml:"message,omitempty"`
}

type Engine struct {
	tool    VersionManager
	catalog CatalogSource
	logger  *slog.Logger

	mu       sync.Mutex
	inflight map[string]string
}

func New(tool VersionManager, cat CatalogSource, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		tool:     tool,
		catalog:  cat,
		logger:   logger,
		inflight: map[string]string{},
	}
}

func (e *Engine) ListInstalled(ctx context.Context) InstalledResult {
	list, err := e.tool.List(ctx)
	if err != nil {
		e.logger.Warn("list installed versions failed", "error", err)
		return InstalledResult{
			Success:  false,
			Versions: []nvm.InstalledVersion{},
			Message:  fmt.Sprintf("Error listing installed versions: %s", err.Error()),
		}
	}
	return InstalledResult{Success: true, Versions: list}
}

func (e *Engine) ListAvailable(ctx context.Context) AvailableResult {
	entries, err := e.catalog.Fetch(ctx)
	if err != nil {
		e.logger.Warn("catalog fetch failed, falling back to ls-remote", "error", err)
		return e.listRemoteFallback(ctx, err)
	}
	installed := e.ListInstalled(ctx)
	byVersion := make(map[string]nvm.InstalledVersion, len(installed.Versions))
	for _, v := range installed.Versions {
		byVersion[versions.Normalize(v.Version)] = v
	}
	out := make([]nvm.AvailableVersion, 0, len(entries))
	for _, entry := range entries {
		clean := versions.Normalize(entry.Version)
		status := nvm.StatusNotInstalled
		if _, ok := byVersion[clean]; ok {
			status = nvm.StatusInstalled
		}
		out = append(out, nvm.AvailableVersion{
			Version:    clean,
			NpmVersion: entry.NpmVersion,
			Status:     status,
			Date:       entry.Date,
			LTS:        entry.LTS,
		})
	}
	res := AvailableResult{Success: true, Versions: out}
	if !installed.Success {
		res.Message = installed.Message
	}
	return res
}

func (e *Engine) listRemoteFallback(ctx context.Context, catalogErr error) AvailableResult {
	list, err := e.tool.ListRemote(ctx)
	if err != nil {
		e.logger.Error("ls-remote fallback failed", "error", err)
		return AvailableResult{
			Success:  false,
			Versions: []nvm.AvailableVersion{},
			Message:  fmt.Sprintf("Error fetching available versions: %s; fallback failed: %s", catalogErr.Error(), err.Error()),
		}
	}
	return AvailableResult{
		Success:  true,
		Versions: list,
		Degraded: true,
		Message:  fmt.Sprintf("Catalog unavailable, showing versions from ls-remote: %s", catalogErr.Error()),
	}
}

func (e *Engine) Install(ctx context.Context, version string) ActionResult {
	return e.mutate(ctx, version, opInstall)
}

func (e *Engine) Uninstall(ctx context.Context, version string) ActionResult {
	return e.mutate(ctx, version, opUninstall)
}

// Switch does not check that version is installed; the manager's own error is
// reported when it is not.
func (e *Engine) Switch(ctx context.Context, version string) ActionResult {
	return e.mutate(ctx, version, opSwitch)
}

// Snapshot loads both lists concurrently.
func (e *Engine) Snapshot(ctx context.Context) (InstalledResult, AvailableResult) {
	var installed InstalledResult
	var available AvailableResult
	var g errgroup.Group
	g.Go(func() error {
		installed = e.ListInstalled(ctx)
		return nil
	})
	g.Go(func() error {
		available = e.ListAvailable(ctx)
		return nil
	})
	_ = g.Wait()
	return installed, available
}
