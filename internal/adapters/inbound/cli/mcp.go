package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/rackmap/internal/adapters/inbound/mcp"
)

func newMCPCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the rackmap MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(sess))
	return cmd
}

func newMCPServeCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start rackmap MCP server (stdio)",
		Long:  "Start the rackmap MCP server using stdio transport so assistants can read floor maps and record stock.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := sess.service(cmd.Context())
			if err != nil {
				return err
			}
			s := mcpadapter.NewRackmapMCPServer(svc, sess.log)
			return server.ServeStdio(s)
		},
	}
}
