package engine

import (
	"context"
	"fmt"
	"time"

	"nvm-manager/internal/versions"
)

type operation struct {
	name    string
	doing   string
	done    string
	failing string
}

var (
	opInstall   = operation{name: "install", doing: "installing", done: "Successfully installed version %s", failing: "Error installing version %s: %s"}
	opUninstall = operation{name: "uninstall", doing: "uninstalling", done: "Successfully uninstalled version %s", failing: "Error uninstalling version %s: %s"}
	opSwitch    = operation{name: "use", doing: "switching", done: "Switched to version %s", failing: "Error switching to version %s: %s"}
)

func (e *Engine) run(ctx context.Context, op operation, version string) error {
	switch op.name {
	case opInstall.name:
		return e.tool.Install(ctx, version)
	case opUninstall.name:
		return e.tool.Uninstall(ctx, version)
	default:
		return e.tool.Use(ctx, version)
	}
}

func (e *Engine) mutate(ctx context.Context, version string, op operation) ActionResult {
	release, busy := e.acquire(version, op.doing)
	if busy != "" {
		e.logger.Info("rejected concurrent operation", "op", op.name, "version", version, "running", busy)
		return ActionResult{
			Success: false,
			Message: fmt.Sprintf("another operation is already running for version %s (%s)", version, busy),
		}
	}
	defer release()

	start := time.Now()
	e.logger.Info("running", "op", op.name, "version", version)
	if err := e.run(ctx, op, version); err != nil {
		e.logger.Warn("operation failed", "op", op.name, "version", version, "error", err, "elapsed", time.Since(start))
		return ActionResult{Success: false, Message: fmt.Sprintf(op.failing, version, err.Error())}
	}
	e.logger.Info("operation complete", "op", op.name, "version", version, "elapsed", time.Since(start))
	return ActionResult{Success: true, Message: fmt.Sprintf(op.done, version)}
}

// acquire marks version as in flight. When another mutation already holds it,
// the holder's description is returned and release is nil.
func (e *Engine) acquire(version, doing string) (release func(), busy string) {
	key := versions.Normalize(version)
	e.mu.Lock()
	defer e.mu.Unlock()
	if running, ok := e.inflight[key]; ok {
		return nil, running
	}
	e.inflight[key] = doing
	return func() {
		e.mu.Lock()
		delete(e.inflight, key)
		e.mu.Unlock()
	}, ""
}

// InFlight reports the mutation currently running for version, if any.
func (e *Engine) InFlight(version string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	doing, ok := e.inflight[versions.Normalize(version)]
	return doing, ok
}
