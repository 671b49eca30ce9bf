// Package mcp serves the adapter actions as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nvm-manager/internal/adapter"
	"nvm-manager/internal/nvm"
)

type Server struct {
	server     *mcp.Server
	dispatcher adapter.Dispatcher
}

func NewServer(d adapter.Dispatcher, version string) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "nvm-manager",
			Version: version,
		}, nil),
		dispatcher: d,
	}
	s.registerTools()
	return s
}

// Run serves over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        adapter.ActionInstall,
		Description: "Install a Node.js version with nvm",
	}, s.handleInstall)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        adapter.ActionUninstall,
		Description: "Uninstall an installed Node.js version",
	}, s.handleUninstall)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        adapter.ActionSwitch,
		Description: "Make an installed Node.js version the active one",
	}, s.handleSwitch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        adapter.ActionInstalled,
		Description: "List Node.js versions installed locally and mark the active one",
	}, s.handleInstalled)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        adapter.ActionAvailable,
		Description: "List released Node.js versions with their npm version and install status",
	}, s.handleAvailable)
}

type VersionInput struct {
	Version string `json:"version" jsonschema:"Node.js version such as 20.9.0"`
}

type ActionOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListInput struct{}

type InstalledOutput struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message,omitempty"`
	Versions []nvm.InstalledVersion `json:"versions"`
}

type AvailableOutput struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message,omitempty"`
	Degraded bool                   `json:"degraded,omitempty"`
	Versions []nvm.AvailableVersion `json:"versions"`
}

func (s *Server) action(ctx context.Context, action string, in VersionInput) ActionOutput {
	resp := s.dispatcher.Handle(ctx, adapter.Request{Action: action, Version: in.Version})
	return ActionOutput{Success: resp.Success, Message: resp.Message}
}

func (s *Server) handleInstall(ctx context.Context, _ *mcp.CallToolRequest, in VersionInput) (*mcp.CallToolResult, ActionOutput, error) {
	return nil, s.action(ctx, adapter.ActionInstall, in), nil
}

func (s *Server) handleUninstall(ctx context.Context, _ *mcp.CallToolRequest, in VersionInput) (*mcp.CallToolResult, ActionOutput, error) {
	return nil, s.action(ctx, adapter.ActionUninstall, in), nil
}

func (s *Server) handleSwitch(ctx context.Context, _ *mcp.CallToolRequest, in VersionInput) (*mcp.CallToolResult, ActionOutput, error) {
	return nil, s.action(ctx, adapter.ActionSwitch, in), nil
}

func (s *Server) handleInstalled(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, InstalledOutput, error) {
	resp := s.dispatcher.Handle(ctx, adapter.Request{Action: adapter.ActionInstalled})
	out := InstalledOutput{Success: resp.Success, Message: resp.Message, Versions: []nvm.InstalledVersion{}}
	if list, ok := resp.Versions.([]nvm.InstalledVersion); ok {
		out.Versions = list
	}
	return nil, out, nil
}

func (s *Server) handleAvailable(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, AvailableOutput, error) {
	resp := s.dispatcher.Handle(ctx, adapter.Request{Action: adapter.ActionAvailable})
	out := AvailableOutput{Success: resp.Success, Message: resp.Message, Degraded: resp.Degraded, Versions: []nvm.AvailableVersion{}}
	if list, ok := resp.Versions.([]nvm.AvailableVersion); ok {
		out.Versions = list
	}
	return nil, out, nil
}
