package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdidvp/rackmap/internal/domain"
)

func (s *Store) ListFloors(ctx context.Context) ([]domain.Floor, error) {
	var recs []floorRecord
	if err := s.db.WithContext(ctx).Order("floor_number ASC").Find(&recs).Error; err != nil {
		return nil, &domain.StorageError{Op: "list floors", Err: err}
	}
	floors := make([]domain.Floor, 0, len(recs))
	for _, r := range recs {
		floors = append(floors, r.toDomain())
	}
	return floors, nil
}

func (s *Store) WatchFloors(ctx context.Context) (<-chan []domain.Floor, error) {
	return watch(ctx, s, floorsTable, s.ListFloors)
}

func (s *Store) GetFloor(ctx context.Context, number int) (*domain.Floor, error) {
	var rec floorRecord
	err := s.db.WithContext(ctx).Where("floor_number = ?", number).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get floor", Err: err}
	}
	f := rec.toDomain()
	return &f, nil
}

func (s *Store) SaveFloor(ctx context.Context, floor domain.Floor) error {
	rec := fromFloor(floor)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "floor_number"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return &domain.StorageError{Op: "save floor", Err: err}
	}
	s.hub.publish(floorsTable)
	return nil
}

// UpdateFloor changes the column counts of an existing floor. Updating a
// floor that does not exist is a no-op.
func (s *Store) UpdateFloor(ctx context.Context, floor domain.Floor) error {
	res := s.db.WithContext(ctx).
		Model(&floorRecord{}).
		Where("floor_number = ?", floor.Number).
		Updates(map[string]any{
			"left_columns":  floor.LeftColumns,
			"right_columns": floor.RightColumns,
		})
	if res.Error != nil {
		return &domain.StorageError{Op: "update floor", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.publish(floorsTable)
	}
	return nil
}

func (s *Store) DeleteFloor(ctx context.Context, number int) error {
	res := s.db.WithContext(ctx).Where("floor_number = ?", number).Delete(&floorRecord{})
	if res.Error != nil {
		return &domain.StorageError{Op: "delete floor", Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.publish(floorsTable)
	}
	return nil
}

func (s *Store) DeleteAllFloors(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&floorRecord{}).Error; err != nil {
		return &domain.StorageError{Op: "delete all floors", Err: err}
	}
	s.hub.publish(floorsTable)
	return nil
}

func (s *Store) CountFloors(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&floorRecord{}).Count(&n).Error; err != nil {
		return 0, &domain.StorageError{Op: "count floors", Err: err}
	}
	return int(n), nil
}
