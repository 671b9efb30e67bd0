package storage

import "github.com/abdidvp/rackmap/internal/domain"

type floorRecord struct {
	FloorNumber  int `gorm:"column:floor_number;primaryKey;autoIncrement:false"`
	LeftColumns  int `gorm:"column:left_columns;not null"`
	RightColumns int `gorm:"column:right_columns;not null"`
}

func (floorRecord) TableName() string { return "floors" }

type productRecord struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Model       string `gorm:"column:model;not null;index"`
	Quantity    int    `gorm:"column:quantity;not null"`
	FloorNumber int    `gorm:"column:floor_number;not null;index:idx_products_floor_position"`
	Position    string `gorm:"column:position;not null;index:idx_products_floor_position"`
}

func (productRecord) TableName() string { return "products" }

// palletRecord is migrated so the schema matches existing databases; no
// query touches it.
type palletRecord struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FloorNumber int    `gorm:"column:floor_number;not null"`
	Position    string `gorm:"column:position;not null"`
	Column      int    `gorm:"column:column;not null"`
	Row         int    `gorm:"column:row;not null"`
	Side        string `gorm:"column:side;not null"`
}

func (palletRecord) TableName() string { return "pallets" }

func fromFloor(f domain.Floor) floorRecord {
	return floorRecord{FloorNumber: f.Number, LeftColumns: f.LeftColumns, RightColumns: f.RightColumns}
}

func (r floorRecord) toDomain() domain.Floor {
	return domain.Floor{Number: r.FloorNumber, LeftColumns: r.LeftColumns, RightColumns: r.RightColumns}
}

func fromProduct(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Model:       p.Model,
		Quantity:    p.Quantity,
		FloorNumber: p.FloorNumber,
		Position:    p.Position,
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Model:       r.Model,
		Quantity:    r.Quantity,
		FloorNumber: r.FloorNumber,
		Position:    r.Position,
	}
}
