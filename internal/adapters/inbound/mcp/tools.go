package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/rackmap/internal/application"
	"github.com/abdidvp/rackmap/internal/domain"
)

// registerTools registers all rackmap MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.InventoryService) {
	// 1. rackmap_status
	s.AddTool(
		mcplib.NewTool("rackmap_status",
			mcplib.WithDescription("Returns whether the warehouse is set up with floor, product and unit totals"),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		handleStatus(svc),
	)

	// 2. rackmap_setup
	s.AddTool(
		mcplib.NewTool("rackmap_setup",
			mcplib.WithDescription("Create floors 1..n of an empty warehouse"),
			mcplib.WithString("layouts",
				mcplib.Required(),
				mcplib.Description("Comma-separated LEFTxRIGHT column counts, one per floor, e.g. 5x5,4x6"),
			),
		),
		handleSetup(svc),
	)

	// 3. rackmap_list_floors
	s.AddTool(
		mcplib.NewTool("rackmap_list_floors",
			mcplib.WithDescription("Returns every floor ordered by number"),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		handleListFloors(svc),
	)

	// 4. rackmap_add_floor
	s.AddTool(
		mcplib.NewTool("rackmap_add_floor",
			mcplib.WithDescription("Add a floor or replace the floor with the same number"),
			mcplib.WithNumber("number", mcplib.Required(), mcplib.Min(1), mcplib.Description("Floor number")),
			mcplib.WithNumber("left", mcplib.Required(), mcplib.Min(1), mcplib.Max(20), mcplib.Description("Columns in the left area")),
			mcplib.WithNumber("right", mcplib.Required(), mcplib.Min(1), mcplib.Max(20), mcplib.Description("Columns in the right area")),
		),
		handleAddFloor(svc),
	)

	// 5. rackmap_delete_floor
	s.AddTool(
		mcplib.NewTool("rackmap_delete_floor",
			mcplib.WithDescription("Delete a floor; its products are kept and show up as unplaced"),
			mcplib.WithNumber("number", mcplib.Required(), mcplib.Description("Floor number")),
			mcplib.WithDestructiveHintAnnotation(true),
		),
		handleDeleteFloor(svc),
	)

	// 6. rackmap_list_products
	s.AddTool(
		mcplib.NewTool("rackmap_list_products",
			mcplib.WithDescription("Returns products ordered by floor and position, optionally narrowed to a floor or a floor position"),
			mcplib.WithNumber("floor", mcplib.Description("Only products on this floor")),
			mcplib.WithString("position", mcplib.Description("Only products at this position (needs floor)")),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		handleListProducts(svc),
	)

	// 7. rackmap_add_product
	s.AddTool(
		mcplib.NewTool("rackmap_add_product",
			mcplib.WithDescription("Store a quantity of a model at a floor position"),
			mcplib.WithString("model", mcplib.Required(), mcplib.Description("Model code, a letter followed by 4 to 6 letters, digits or dashes")),
			mcplib.WithString("quantity", mcplib.Required(), mcplib.Description("Positive whole number of units")),
			mcplib.WithNumber("floor", mcplib.Required(), mcplib.Description("Floor number")),
			mcplib.WithString("position", mcplib.Required(), mcplib.Description("Position such as L1-1 or R3-2")),
		),
		handleAddProduct(svc),
	)

	// 8. rackmap_update_product
	s.AddTool(
		mcplib.NewTool("rackmap_update_product",
			mcplib.WithDescription("Rewrite a stored product"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Product id")),
			mcplib.WithString("model", mcplib.Required(), mcplib.Description("Model code")),
			mcplib.WithString("quantity", mcplib.Required(), mcplib.Description("Positive whole number of units")),
			mcplib.WithNumber("floor", mcplib.Required(), mcplib.Description("Floor number")),
			mcplib.WithString("position", mcplib.Required(), mcplib.Description("Position such as L1-1")),
		),
		handleUpdateProduct(svc),
	)

	// 9. rackmap_set_quantity
	s.AddTool(
		mcplib.NewTool("rackmap_set_quantity",
			mcplib.WithDescription("Change only the quantity of a stored product"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Product id")),
			mcplib.WithString("quantity", mcplib.Required(), mcplib.Description("Positive whole number of units")),
		),
		handleSetQuantity(svc),
	)

	// 10. rackmap_delete_product
	s.AddTool(
		mcplib.NewTool("rackmap_delete_product",
			mcplib.WithDescription("Delete a stored product by id"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Product id")),
			mcplib.WithDestructiveHintAnnotation(true),
		),
		handleDeleteProduct(svc),
	)

	// 11. rackmap_search
	s.AddTool(
		mcplib.NewTool("rackmap_search",
			mcplib.WithDescription("Returns every stored product of a model"),
			mcplib.WithString("model", mcplib.Required(), mcplib.Description("Model code")),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		handleSearch(svc),
	)

	// 12. rackmap_floor_map
	s.AddTool(
		mcplib.NewTool("rackmap_floor_map",
			mcplib.WithDescription("Returns the rack grid of a floor with the products in every slot"),
			mcplib.WithNumber("floor", mcplib.Required(), mcplib.Description("Floor number")),
			mcplib.WithReadOnlyHintAnnotation(true),
		),
		handleFloorMap(svc),
	)

	// 13. rackmap_reset
	s.AddTool(
		mcplib.NewTool("rackmap_reset",
			mcplib.WithDescription(fmt.Sprintf("Delete every floor and product. Requires confirm=%q", domain.ResetConfirmation)),
			mcplib.WithString("confirm", mcplib.Required(), mcplib.Description("Confirmation word")),
			mcplib.WithDestructiveHintAnnotation(true),
		),
		handleReset(svc),
	)
}

func handleStatus(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		st, err := svc.Status(ctx)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(st)
	}
}

func handleSetup(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		text, err := request.RequireString("layouts")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		layouts, err := domain.ParseFloorLayouts(text)
		if err != nil {
			return failure(err), nil
		}
		floors, err := svc.SetupWarehouse(ctx, layouts)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(floors)
	}
}

func handleListFloors(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		floors, err := svc.Floors(ctx)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(floors)
	}
}

func handleAddFloor(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		number, err := request.RequireInt("number")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		left, err := request.RequireInt("left")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		right, err := request.RequireInt("right")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		f, err := svc.AddFloor(ctx, number, left, right)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(f)
	}
}

func handleDeleteFloor(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		number, err := request.RequireInt("number")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := svc.DeleteFloor(ctx, number); err != nil {
			return failure(err), nil
		}
		return textResult(fmt.Sprintf("Deleted floor %d", number)), nil
	}
}

func handleListProducts(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		floor := request.GetInt("floor", 0)
		position := request.GetString("position", "")
		if position != "" {
			canonical, ok := domain.CanonicalPosition(position)
			if !ok {
				return failure(domain.Reject(domain.RulePositionFormat,
					"position %q must look like L1-1 or R3-2", position)), nil
			}
			position = canonical
		}

		var (
			products []domain.Product
			err      error
		)
		switch {
		case position != "" && floor == 0:
			return errorResult("position needs floor"), nil
		case position != "":
			products, err = svc.ProductsAt(ctx, floor, position)
		case floor != 0:
			products, err = svc.ProductsByFloor(ctx, floor)
		default:
			products, err = svc.Products(ctx)
		}
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(products)
	}
}

func handleAddProduct(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args, err := productArgs(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		p, err := svc.PlaceProduct(ctx, args.model, args.quantity, args.floor, args.position)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(p)
	}
}

func handleUpdateProduct(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		args, err := productArgs(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		p, err := svc.EditProduct(ctx, int64(id), args.model, args.quantity, args.floor, args.position)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(p)
	}
}

func handleSetQuantity(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		quantity, err := quantityText(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := svc.ChangeQuantity(ctx, int64(id), quantity); err != nil {
			return failure(err), nil
		}
		return textResult(fmt.Sprintf("Set quantity of product %d to %s", id, quantity)), nil
	}
}

func handleDeleteProduct(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := svc.DeleteProduct(ctx, int64(id)); err != nil {
			return failure(err), nil
		}
		return textResult(fmt.Sprintf("Deleted product %d", id)), nil
	}
}

func handleSearch(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		model, err := request.RequireString("model")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		products, err := svc.SearchByModel(ctx, model)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(products)
	}
}

func handleFloorMap(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		floor, err := request.RequireInt("floor")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		m, err := svc.FloorMap(ctx, floor)
		if err != nil {
			return failure(err), nil
		}
		return jsonResult(m)
	}
}

func handleReset(svc *application.InventoryService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		confirm, err := request.RequireString("confirm")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := svc.ResetWarehouse(ctx, confirm); err != nil {
			return failure(err), nil
		}
		return textResult("Warehouse reset"), nil
	}
}

type productInput struct {
	model    string
	quantity string
	floor    int
	position string
}

func productArgs(request mcplib.CallToolRequest) (productInput, error) {
	var in productInput
	var err error
	if in.model, err = request.RequireString("model"); err != nil {
		return in, err
	}
	if in.quantity, err = quantityText(request); err != nil {
		return in, err
	}
	if in.floor, err = request.RequireInt("floor"); err != nil {
		return in, err
	}
	if in.position, err = request.RequireString("position"); err != nil {
		return in, err
	}
	return in, nil
}

// quantityText keeps the raw quantity so that validation sees exactly what
// the client sent, whether it arrived as a string or a JSON number.
func quantityText(request mcplib.CallToolRequest) (string, error) {
	v, ok := request.GetArguments()["quantity"]
	if !ok {
		return "", fmt.Errorf("required argument \"quantity\" not found")
	}
	switch q := v.(type) {
	case string:
		return q, nil
	case float64:
		return fmt.Sprint(q), nil
	default:
		return "", fmt.Errorf("argument \"quantity\" must be a number or numeric string")
	}
}

// failure reports a rejection with its rule so clients can tell bad input
// from a storage fault.
func failure(err error) *mcplib.CallToolResult {
	if rej, ok := domain.AsRejection(err); ok {
		return errorResult(fmt.Sprintf("rejected (%s): %s", rej.Rule, rej.Message))
	}
	return errorResult(fmt.Sprintf("failed: %v", err))
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
