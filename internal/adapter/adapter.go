// Package adapter exposes the engine as named request/response actions so a
// separate process can drive it.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"nvm-manager/internal/engine"
	"nvm-manager/internal/nvm"
)

const (
	ActionInstall   = "install-node-version"
	ActionUninstall = "uninstall-node-version"
	ActionSwitch    = "switch-node-version"
	ActionInstalled = "get-installed-versions"
	ActionAvailable = "get-available-node-versions"
)

// Actions lists every action in a stable order.
var Actions = []string{ActionInstall, ActionUninstall, ActionSwitch, ActionInstalled, ActionAvailable}

// Engine is the subset of *engine.Engine the adapter dispatches to.
type Engine interface {
	Install(ctx context.Context, version string) engine.ActionResult
	Uninstall(ctx context.Context, version string) engine.ActionResult
	Switch(ctx context.Context, version string) engine.ActionResult
	ListInstalled(ctx context.Context) engine.InstalledResult
	ListAvailable(ctx context.Context) engine.AvailableResult
}

type Request struct {
	ID      string `json:"id,omitempty"`
	Action  string `json:"action"`
	Version string `json:"version,omitempty"`
}

// Response.Versions holds []nvm.InstalledVersion or []nvm.AvailableVersion
// depending on the action; it is omitted for mutating actions.
type Response struct {
	ID       string `json:"id"`
	Action   string `json:"action"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
	Versions any    `json:"versions,omitempty"`
}

type Dispatcher struct {
	engine Engine
}

func NewDispatcher(e Engine) Dispatcher {
	return Dispatcher{engine: e}
}

func (d Dispatcher) Handle(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID, Action: req.Action}
	version := strings.TrimSpace(req.Version)

	switch req.Action {
	case ActionInstall, ActionUninstall, ActionSwitch:
		if version == "" {
			resp.Message = fmt.Sprintf("%s requires a version", req.Action)
			return resp
		}
		var res engine.ActionResult
		switch req.Action {
		case ActionInstall:
			res = d.engine.Install(ctx, version)
		case ActionUninstall:
			res = d.engine.Uninstall(ctx, version)
		default:
			res = d.engine.Switch(ctx, version)
		}
		resp.Success = res.Success
		resp.Message = res.Message
	case ActionInstalled:
		res := d.engine.ListInstalled(ctx)
		resp.Success = res.Success
		resp.Message = res.Message
		resp.Versions = nonNil(res.Versions)
	case ActionAvailable:
		res := d.engine.ListAvailable(ctx)
		resp.Success = res.Success
		resp.Message = res.Message
		resp.Degraded = res.Degraded
		resp.Versions = nonNilAvailable(res.Versions)
	default:
		resp.Message = fmt.Sprintf("unknown action %q", req.Action)
	}
	return resp
}

func nonNil(v []nvm.InstalledVersion) []nvm.InstalledVersion {
	if v == nil {
		return []nvm.InstalledVersion{}
	}
	return v
}

func nonNilAvailable(v []nvm.AvailableVersion) []nvm.AvailableVersion {
	if v == nil {
		return []nvm.AvailableVersion{}
	}
	return v
}
