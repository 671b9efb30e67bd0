package domain

import "context"

// ProductFilter narrows a product query. Zero fields match everything.
type ProductFilter struct {
	Model       string `json:"model,omitempty"`
	FloorNumber int    `json:"floor_number,omitempty"`
	Position    string `json:"position,omitempty"`
}

// FloorRepository persists floors keyed by floor number.
type FloorRepository interface {
	ListFloors(ctx context.Context) ([]Floor, error)
	// WatchFloors emits the full floor list now and after every change.
	WatchFloors(ctx context.Context) (<-chan []Floor, error)
	// GetFloor returns (nil, nil) when no floor has that number.
	GetFloor(ctx context.Context, number int) (*Floor, error)
	// SaveFloor inserts the floor or silently replaces one with the same number.
	SaveFloor(ctx context.Context, floor Floor) error
	UpdateFloor(ctx context.Context, floor Floor) error
	DeleteFloor(ctx context.Context, number int) error
	DeleteAllFloors(ctx context.Context) error
	CountFloors(ctx context.Context) (int, error)
}

// ProductRepository persists products keyed by a generated id.
type ProductRepository interface {
	// ListProducts returns matches ordered by floor number, then position.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	// GetProduct returns (nil, nil) when no product has that id.
	GetProduct(ctx context.Context, id int64) (*Product, error)
	// WatchProducts emits the matching products now and after every change.
	WatchProducts(ctx context.Context, filter ProductFilter) (<-chan []Product, error)
	// SaveProduct inserts (ID zero) or replaces the product and returns its id.
	SaveProduct(ctx context.Context, product Product) (int64, error)
	UpdateProduct(ctx context.Context, product Product) error
	DeleteProduct(ctx context.Context, id int64) error
	DeleteProductAt(ctx context.Context, floorNumber int, position, model string) error
	DeleteAllProducts(ctx context.Context) error
	// UpdateQuantity changes only the quantity of the product.
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
}

// InventoryStore is the full storage port used by the inventory service.
type InventoryStore interface {
	FloorRepository
	ProductRepository
	// Reset deletes every product and then every floor as one unit.
	Reset(ctx context.Context) error
}

// ConfigLoader reads settings for the warehouse kept in dir.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}
