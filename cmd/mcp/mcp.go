// Package mcp implements the mcp command.
package mcp

import (
	"github.com/spf13/cobra"

	"github.com/joshsymonds/tokubetsu/internal/app"
	mcpserver "github.com/joshsymonds/tokubetsu/internal/mcp"
	"github.com/joshsymonds/tokubetsu/pkg/logger"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(opts *app.Options, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the tokubetsu MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newServeCommand(opts, version))
	return cmd
}

func newServeCommand(opts *app.Options, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio)",
		Long: `Start the tokubetsu MCP server using stdio transport. AI coding assistants
can then request fix suggestions, preview and apply them, and list rules.
Logs go to stderr so they do not interfere with the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := logger.GetGlobalLogger()
			a, err := app.Load(*opts, log)
			if err != nil {
				return err
			}

			log.Info("Starting MCP server", "version", version)
			return mcpserver.ServeStdio(mcpserver.NewServer(version, a.Engine, a.Catalog, log))
		},
	}
}
