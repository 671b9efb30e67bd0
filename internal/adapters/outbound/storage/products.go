package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdidvp/rackmap/internal/domain"
)

// ListProducts orders by floor number, then position (lexically), then id.
func (s *Store) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := s.db.WithContext(ctx).Model(&productRecord{})
	if filter.Model != "" {
		q = q.Where("model = ?", filter.Model)
	}
	if filter.FloorNumber != 0 {
		q = q.Where("floor_number = ?", filter.FloorNumber)
	}
	if filter.Position != "" {
		q = q.Where("position = ?", filter.Position)
	}

	var recs []productRecord
	if err := q.Order("floor_number ASC, position ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, &domain.StorageError{Op: "list products", Err: err}
	}
	products := make([]domain.Product, 0, len(recs))
	for _, r := range recs {
		products = append(products, r.toDomain())
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var rec productRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get product", Err: err}
	}
	p := rec.toDomain()
	return &p, nil
}

func (s *Store) WatchProducts(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error) {
	return watch(ctx, s, productsTable, func(ctx context.Context) ([]domain.Product, error) {
		return s.ListProducts(ctx, filter)
	})
}

// SaveProduct inserts the product when its ID is zero and replaces the row
// with the same ID otherwise.
func (s *Store) SaveProduct(ctx context.Context, product domain.Product) (int64, error) {
	rec := fromProduct(product)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return 0, &domain.StorageError{Op: "save product", Err: err}
	}
	s.hub.publish(productsTable)
	return rec.ID, nil
}

// UpdateProduct rewrites every field of an existing product. Updating a
// product that does not exist is a no-op.
func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) error {
	res := s.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"model":        product.Model,
			"quantity":     product.Quantity,
			"floor_number": product.FloorNumber,
			"position":     product.Position,
		})
	if res.Error != nil {
		return &domain.StorageError{Op: "update product", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.publish(productsTable)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&productRecord{})
	if res.Error != nil {
		return &domain.StorageError{Op: "delete product", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.publish(productsTable)
	}
	return nil
}

// DeleteProductAt removes every row of model stored at the floor position.
func (s *Store) DeleteProductAt(ctx context.Context, floorNumber int, position, model string) error {
	res := s.db.WithContext(ctx).
		Where("floor_number = ? AND position = ? AND model = ?", floorNumber, position, model).
		Delete(&productRecord{})
	if res.Error != nil {
		return &domain.StorageError{Op: "delete product at position", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.publish(productsTable)
	}
	return nil
}

func (s *Store) DeleteAllProducts(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&productRecord{}).Error; err != nil {
		return &domain.StorageError{Op: "delete all products", Err: err}
	}
	s.hub.publish(productsTable)
	return nil
}

func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	res := s.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return &domain.StorageError{Op: "update quantity", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.publish(productsTable)
	}
	return nil
}
