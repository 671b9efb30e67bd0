package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/rackmap/internal/application"
)

// registerResources registers all rackmap MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.InventoryService) {
	// 1. rackmap://floors - every floor
	s.AddResource(
		mcplib.NewResource(
			"rackmap://floors",
			"Floors",
			mcplib.WithResourceDescription("Every floor with its left and right column counts"),
			mcplib.WithMIMEType("application/json"),
		),
		handleFloorsResource(svc),
	)

	// 2. rackmap://products - every stored product
	s.AddResource(
		mcplib.NewResource(
			"rackmap://products",
			"Products",
			mcplib.WithResourceDescription("Every stored product ordered by floor and position"),
			mcplib.WithMIMEType("application/json"),
		),
		handleProductsResource(svc),
	)

	// 3. rackmap://floors/{number}/map - per-floor grid (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"rackmap://floors/{number}/map",
			"Floor Map",
			mcplib.WithTemplateDescription("Rack grid of one floor with the products in every slot"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleFloorMapResource(svc),
	)
}

func handleFloorsResource(svc *application.InventoryService) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		floors, err := svc.Floors(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing floors: %w", err)
		}
		return jsonContents(request.Params.URI, floors)
	}
}

func handleProductsResource(svc *application.InventoryService) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		products, err := svc.Products(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}
		return jsonContents(request.Params.URI, products)
	}
}

func handleFloorMapResource(svc *application.InventoryService) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Template matching fills arguments with the captured values.
		text := templateArg(request.Params.Arguments["number"])
		number, err := strconv.Atoi(text)
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("floor number must be a positive integer, got %q", text)
		}

		m, err := svc.FloorMap(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("building floor map: %w", err)
		}
		return jsonContents(request.Params.URI, m)
	}
}

func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
