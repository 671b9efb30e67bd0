package mcp

import (
	"context"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/rackmap/internal/application"
)

// NewRackmapMCPServer creates an MCP server exposing the inventory service as
// tools and read-only resources.
func NewRackmapMCPServer(svc *application.InventoryService, log *zap.Logger) *server.MCPServer {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("mcp")

	s := server.NewMCPServer(
		"rackmap",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(logToolCalls(log)),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}

func logToolCalls(log *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, request)
			fields := []zap.Field{
				zap.String("tool", request.Params.Name),
				zap.Duration("elapsed", time.Since(start)),
			}
			switch {
			case err != nil:
				log.Error("tool call failed", append(fields, zap.Error(err))...)
			case result != nil && result.IsError:
				log.Info("tool call rejected", fields...)
			default:
				log.Debug("tool call", fields...)
			}
			return result, err
		}
	}
}
