package main

import (
	"strings"

	"github.com/spf13/cobra"

	"nvm-manager/internal/adapter"
	mcpserver "nvm-manager/internal/mcp"
	"nvm-manager/internal/version"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON-lines requests on stdin with one JSON response per line on stdout",
		Long: `serve reads requests such as
  {"id":"1","action":"install-node-version","version":"20.9.0"}
one per line and writes a response line for each. Actions: ` + actionList() + `.
Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			e.logger.Info("serving json-lines on stdio", "version", version.Value)
			return adapter.Serve(cmd.Context(), adapter.NewDispatcher(e.engine), cmd.InOrStdin(), cmd.OutOrStdout(), e.logger)
		},
	}
}

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start a Model Context Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			e.logger.Info("serving mcp on stdio", "version", version.Value)
			return mcpserver.NewServer(adapter.NewDispatcher(e.engine), version.Value).Run(cmd.Context())
		},
	}
}

func actionList() string {
	return strings.Join(adapter.Actions, ", ")
}
