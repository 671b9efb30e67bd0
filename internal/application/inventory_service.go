package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abdidvp/rackmap/internal/domain"
)

// InventoryService is the single entry point for floors and products. It
// validates raw user input and delegates persistence to the store.
type InventoryService struct {
	store     domain.InventoryStore
	log       *zap.Logger
	rows      int
	maxFloors int
}

func NewInventoryService(store domain.InventoryStore, log *zap.Logger) *InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryService{
		store:     store,
		log:       log.Named("inventory"),
		rows:      domain.DefaultRowsPerColumn,
		maxFloors: domain.MaxFloors,
	}
}

// WithConfig applies grid height and floor limit from cfg.
func (s *InventoryService) WithConfig(cfg domain.Config) *InventoryService {
	cfg = cfg.WithDefaults()
	s.rows = cfg.RowsPerColumn
	s.maxFloors = cfg.MaxFloors
	return s
}

// RowsPerColumn is the number of rows in every floor column.
func (s *InventoryService) RowsPerColumn() int { return s.rows }

// InitializeWarehouse deletes every product and every floor.
func (s *InventoryService) InitializeWarehouse(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("initializing warehouse: %w", err)
	}
	s.log.Info("warehouse initialized")
	return nil
}

// AddOrUpdateProduct normalizes the model and inserts a new product row.
// Invalid model or quantity yields a *domain.Rejection and nothing is
// written; a persistence failure yields a *domain.StorageError.
func (s *InventoryService) AddOrUpdateProduct(ctx context.Context, model string, quantity, floorNumber int, position string) (domain.Product, error) {
	model = domain.FormatModel(model)
	if !domain.ValidateModel(model) {
		return domain.Product{}, domain.Reject(domain.RuleModelFormat,
			"model %q must be a letter followed by 4 to 6 letters, digits or dashes", model)
	}
	if !domain.ValidateQuantity(strconv.Itoa(quantity)) {
		return domain.Product{}, domain.Reject(domain.RuleQuantityRange,
			"quantity must be a positive integer, got %d", quantity)
	}

	p := domain.Product{Model: model, Quantity: quantity, FloorNumber: floorNumber, Position: position}
	id, err := s.store.SaveProduct(ctx, p)
	if err != nil {
		s.log.Error("saving product failed", zap.String("model", model), zap.Error(err))
		return domain.Product{}, fmt.Errorf("adding product %s: %w", model, err)
	}
	p.ID = id

	s.log.Debug("product added",
		zap.Int64("id", id),
		zap.String("model", model),
		zap.Int("floor", floorNumber),
		zap.String("position", position))
	return p, nil
}

// Status reports the lifecycle state with floor, product and unit totals.
func (s *InventoryService) Status(ctx context.Context) (domain.Status, error) {
	floors, err := s.store.CountFloors(ctx)
	if err != nil {
		return domain.Status{}, fmt.Errorf("counting floors: %w", err)
	}
	products, err := s.store.ListProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return domain.Status{}, fmt.Errorf("listing products: %w", err)
	}
	st := domain.Status{
		State:    domain.StateForFloorCount(floors),
		Floors:   floors,
		Products: len(products),
	}
	for _, p := range products {
		st.Units += p.Quantity
	}
	return st, nil
}

// SetupWarehouse creates floors 1..len(layouts). It refuses to run on a
// warehouse that already has floors.
func (s *InventoryService) SetupWarehouse(ctx context.Context, layouts []domain.FloorLayout) ([]domain.Floor, error) {
	if len(layouts) < domain.MinFloors || len(layouts) > s.maxFloors {
		return nil, domain.Reject(domain.RuleFloorCount,
			"floor count must be between %d and %d, got %d", domain.MinFloors, s.maxFloors, len(layouts))
	}

	count, err := s.store.CountFloors(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting floors: %w", err)
	}
	if count > 0 {
		return nil, domain.Reject(domain.RuleAlreadyInitialized,
			"warehouse already has %d floor(s); reset it before running setup again", count)
	}

	floors := make([]domain.Floor, 0, len(layouts))
	for i, l := range layouts {
		f := domain.Floor{Number: i + 1, LeftColumns: l.LeftColumns, RightColumns: l.RightColumns}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("floor %d: %w", f.Number, err)
		}
		floors = append(floors, f)
	}

	for _, f := range floors {
		if err := s.store.SaveFloor(ctx, f); err != nil {
			return nil, fmt.Errorf("saving floor %d: %w", f.Number, err)
		}
	}

	s.log.Info("warehouse set up", zap.Int("floors", len(floors)))
	return floors, nil
}

// AddFloor inserts or replaces a floor after checking its column counts.
func (s *InventoryService) AddFloor(ctx context.Context, number, left, right int) (domain.Floor, error) {
	f := domain.Floor{Number: number, LeftColumns: left, RightColumns: right}
	if err := f.Validate(); err != nil {
		return domain.Floor{}, err
	}
	if err := s.store.SaveFloor(ctx, f); err != nil {
		return domain.Floor{}, fmt.Errorf("saving floor %d: %w", number, err)
	}
	s.log.Debug("floor saved", zap.Int("floor", number))
	return f, nil
}

// PlaceProduct adds a product from raw user input. Beyond the model and
// quantity rules it requires the floor to exist and the position to lie
// inside that floor's grid.
func (s *InventoryService) PlaceProduct(ctx context.Context, model, quantityText string, floorNumber int, positionText string) (domain.Product, error) {
	p, err := s.checkPlacement(ctx, model, quantityText, floorNumber, positionText)
	if err != nil {
		return domain.Product{}, err
	}
	return s.AddOrUpdateProduct(ctx, p.Model, p.Quantity, p.FloorNumber, p.Position)
}

// EditProduct rewrites product id from raw user input under the same rules
// as PlaceProduct.
func (s *InventoryService) EditProduct(ctx context.Context, id int64, model, quantityText string, floorNumber int, positionText string) (domain.Product, error) {
	if _, err := s.existingProduct(ctx, id); err != nil {
		return domain.Product{}, err
	}
	p, err := s.checkPlacement(ctx, model, quantityText, floorNumber, positionText)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("updating product %d: %w", id, err)
	}
	return p, nil
}

func (s *InventoryService) checkPlacement(ctx context.Context, model, quantityText string, floorNumber int, positionText string) (domain.Product, error) {
	model = domain.FormatModel(model)
	if !domain.ValidateModel(model) {
		return domain.Product{}, domain.Reject(domain.RuleModelFormat,
			"model %q must be a letter followed by 4 to 6 letters, digits or dashes", model)
	}
	quantity, err := domain.ParseQuantity(quantityText)
	if err != nil {
		return domain.Product{}, err
	}

	position, ok := domain.CanonicalPosition(positionText)
	if !ok {
		return domain.Product{}, domain.Reject(domain.RulePositionFormat,
			"position %q must look like L1-1 or R3-2", positionText)
	}

	floor, err := s.existingFloor(ctx, floorNumber)
	if err != nil {
		return domain.Product{}, err
	}
	if !domain.InGrid(*floor, position, s.rows) {
		return domain.Product{}, domain.Reject(domain.RulePositionRange,
			"position %s is outside floor %d (left 1-%d, right 1-%d, rows 1-%d)",
			position, floor.Number, floor.LeftColumns, floor.RightColumns, s.rows)
	}

	return domain.Product{Model: model, Quantity: quantity, FloorNumber: floorNumber, Position: position}, nil
}

// ChangeQuantity sets the quantity of product id from raw user input.
func (s *InventoryService) ChangeQuantity(ctx context.Context, id int64, quantityText string) error {
	quantity, err := domain.ParseQuantity(quantityText)
	if err != nil {
		return err
	}
	if _, err := s.existingProduct(ctx, id); err != nil {
		return err
	}
	if err := s.store.UpdateQuantity(ctx, id, quantity); err != nil {
		return fmt.Errorf("updating quantity of product %d: %w", id, err)
	}
	return nil
}

// SearchByModel returns products of the given model. Blank input matches
// nothing.
func (s *InventoryService) SearchByModel(ctx context.Context, text string) ([]domain.Product, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Product{}, nil
	}
	model := domain.FormatModel(text)
	if !domain.ValidateModel(model) {
		return nil, domain.Reject(domain.RuleModelFormat,
			"model %q must be a letter followed by 4 to 6 letters, digits or dashes", model)
	}
	return s.ProductsByModel(ctx, model)
}

// FloorMap lays the products of a floor out on its grid.
func (s *InventoryService) FloorMap(ctx context.Context, number int) (domain.FloorMap, error) {
	floor, err := s.existingFloor(ctx, number)
	if err != nil {
		return domain.FloorMap{}, err
	}
	products, err := s.ProductsByFloor(ctx, number)
	if err != nil {
		return domain.FloorMap{}, err
	}
	return domain.BuildFloorMap(*floor, products, s.rows), nil
}

// Slot returns the products stored at one position of a floor.
func (s *InventoryService) Slot(ctx context.Context, floorNumber int, positionText string) (domain.Slot, error) {
	position, ok := domain.CanonicalPosition(positionText)
	if !ok {
		return domain.Slot{}, domain.Reject(domain.RulePositionFormat,
			"position %q must look like L1-1 or R3-2", positionText)
	}
	m, err := s.FloorMap(ctx, floorNumber)
	if err != nil {
		return domain.Slot{}, err
	}
	slot, ok := m.Slot(position)
	if !ok {
		return domain.Slot{}, domain.Reject(domain.RulePositionRange,
			"position %s is outside floor %d", position, floorNumber)
	}
	return slot, nil
}

// ResetWarehouse wipes the warehouse once the caller types the
// confirmation word.
func (s *InventoryService) ResetWarehouse(ctx context.Context, confirmation string) error {
	if strings.TrimSpace(strings.ToLower(confirmation)) != domain.ResetConfirmation {
		return domain.Reject(domain.RuleConfirmation,
			"type %q to reset the warehouse", domain.ResetConfirmation)
	}
	return s.InitializeWarehouse(ctx)
}

func (s *InventoryService) existingFloor(ctx context.Context, number int) (*domain.Floor, error) {
	if number <= 0 {
		return nil, domain.Reject(domain.RuleFloorNumber, "floor number must be positive, got %d", number)
	}
	floor, err := s.store.GetFloor(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("loading floor %d: %w", number, err)
	}
	if floor == nil {
		return nil, domain.Reject(domain.RuleFloorNotFound, "floor %d does not exist", number)
	}
	return floor, nil
}

func (s *InventoryService) existingProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading product %d: %w", id, err)
	}
	if p == nil {
		return nil, domain.Reject(domain.RuleProductNotFound, "product %d does not exist", id)
	}
	return p, nil
}

// Floor and product pass-throughs.

func (s *InventoryService) Floors(ctx context.Context) ([]domain.Floor, error) {
	return s.store.ListFloors(ctx)
}

func (s *InventoryService) WatchFloors(ctx context.Context) (<-chan []domain.Floor, error) {
	return s.store.WatchFloors(ctx)
}

// Floor returns (nil, nil) when the floor does not exist.
func (s *InventoryService) Floor(ctx context.Context, number int) (*domain.Floor, error) {
	return s.store.GetFloor(ctx, number)
}

func (s *InventoryService) SaveFloor(ctx context.Context, floor domain.Floor) error {
	return s.store.SaveFloor(ctx, floor)
}

func (s *InventoryService) UpdateFloor(ctx context.Context, floor domain.Floor) error {
	return s.store.UpdateFloor(ctx, floor)
}

func (s *InventoryService) DeleteFloor(ctx context.Context, number int) error {
	return s.store.DeleteFloor(ctx, number)
}

func (s *InventoryService) DeleteAllFloors(ctx context.Context) error {
	return s.store.DeleteAllFloors(ctx)
}

func (s *InventoryService) FloorCount(ctx context.Context) (int, error) {
	return s.store.CountFloors(ctx)
}

// Product returns (nil, nil) when no product has that id.
func (s *InventoryService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *InventoryService) Products(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx, domain.ProductFilter{})
}

func (s *InventoryService) WatchProducts(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error) {
	return s.store.WatchProducts(ctx, filter)
}

func (s *InventoryService) ProductsByModel(ctx context.Context, model string) ([]domain.Product, error) {
	return s.store.ListProducts(ctx, domain.ProductFilter{Model: model})
}

func (s *InventoryService) ProductsByFloor(ctx context.Context, floorNumber int) ([]domain.Product, error) {
	return s.store.ListProducts(ctx, domain.ProductFilter{FloorNumber: floorNumber})
}

func (s *InventoryService) ProductsAt(ctx context.Context, floorNumber int, position string) ([]domain.Product, error) {
	return s.store.ListProducts(ctx, domain.ProductFilter{FloorNumber: floorNumber, Position: position})
}

func (s *InventoryService) SaveProduct(ctx context.Context, product domain.Product) (int64, error) {
	return s.store.SaveProduct(ctx, product)
}

func (s *InventoryService) UpdateProduct(ctx context.Context, product domain.Product) error {
	return s.store.UpdateProduct(ctx, product)
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

func (s *InventoryService) DeleteProductAt(ctx context.Context, floorNumber int, position, model string) error {
	return s.store.DeleteProductAt(ctx, floorNumber, position, model)
}

func (s *InventoryService) DeleteAllProducts(ctx context.Context) error {
	return s.store.DeleteAllProducts(ctx)
}

func (s *InventoryService) SetQuantity(ctx context.Context, id int64, quantity int) error {
	return s.store.UpdateQuantity(ctx, id, quantity)
}
