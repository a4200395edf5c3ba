// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dockwright/dockwright/internal/mcpserver"
)

// newServeCommand creates the `dockwright serve` command. Stdout carries protocol
// frames only; logs go to stderr.
func newServeCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve every alias and operation as an MCP tool over stdio",
		Long: `Serve every alias, workflow and operation as a Model Context Protocol tool.

The server speaks JSON-RPC on stdin and stdout until the client disconnects.
Tool results are the same envelopes printed by '--dw-output json'.

Register it with an MCP client, for example:
  {"command": "dockwright", "args": ["serve"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			srv := mcpserver.New(s.dispatcher, Version, mcpserver.WithLogger(s.logger))
			return srv.ServeStdio(cmd.Context())
		},
	}
}
