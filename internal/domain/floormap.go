package domain

import "sort"

// Slot is one pallet position of the floor grid and what is stored there.
type Slot struct {
	Position string    `json:"position"`
	Products []Product `json:"products"`
}

// Units returns the total quantity stored in the slot.
func (s Slot) Units() int {
	total := 0
	for _, p := range s.Products {
		total += p.Quantity
	}
	return total
}

// Empty reports whether nothing is stored in the slot.
func (s Slot) Empty() bool { return len(s.Products) == 0 }

// MapColumn is a column of slots, rows ascending.
type MapColumn struct {
	Side   Side   `json:"side"`
	Number int    `json:"number"`
	Slots  []Slot `json:"slots"`
}

// FloorMap is the rendered grid of a floor: the left area, the aisle, and
// the right area, each split into columns of Rows slots.
type FloorMap struct {
	Floor    Floor       `json:"floor"`
	Rows     int         `json:"rows"`
	Left     []MapColumn `json:"left"`
	Right    []MapColumn `json:"right"`
	Unplaced []Product   `json:"unplaced,omitempty"`
}

// BuildFloorMap lays products out on the grid of floor. Products of other
// floors are ignored; products whose position is malformed or outside the
// grid are collected in Unplaced.
func BuildFloorMap(floor Floor, products []Product, rows int) FloorMap {
	if rows <= 0 {
		rows = DefaultRowsPerColumn
	}

	byPosition := make(map[string][]Product)
	var unplaced []Product
	for _, p := range products {
		if p.FloorNumber != floor.Number {
			continue
		}
		if !InGrid(floor, p.Position, rows) {
			unplaced = append(unplaced, p)
			continue
		}
		key, _ := CanonicalPosition(p.Position)
		byPosition[key] = append(byPosition[key], p)
	}

	for _, ps := range byPosition {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	}

	return FloorMap{
		Floor:    floor,
		Rows:     rows,
		Left:     buildArea(SideLeft, floor.LeftColumns, rows, byPosition),
		Right:    buildArea(SideRight, floor.RightColumns, rows, byPosition),
		Unplaced: unplaced,
	}
}

func buildArea(side Side, columns, rows int, byPosition map[string][]Product) []MapColumn {
	area := make([]MapColumn, 0, columns)
	for c := 1; c <= columns; c++ {
		col := MapColumn{Side: side, Number: c, Slots: make([]Slot, 0, rows)}
		for r := 1; r <= rows; r++ {
			pos := FormatPosition(side, c, r)
			col.Slots = append(col.Slots, Slot{Position: pos, Products: byPosition[pos]})
		}
		area = append(area, col)
	}
	return area
}

// Slot looks up a slot by its canonical position.
func (m FloorMap) Slot(position string) (Slot, bool) {
	pos, ok := ParsePosition(position)
	if !ok || pos.Column < 1 || pos.Row < 1 || pos.Row > m.Rows {
		return Slot{}, false
	}
	area := m.Left
	if pos.Side == SideRight {
		area = m.Right
	}
	if pos.Column > len(area) {
		return Slot{}, false
	}
	return area[pos.Column-1].Slots[pos.Row-1], true
}

// OccupiedSlots counts slots holding at least one product.
func (m FloorMap) OccupiedSlots() int {
	n := 0
	for _, area := range [][]MapColumn{m.Left, m.Right} {
		for _, col := range area {
			for _, s := range col.Slots {
				if !s.Empty() {
					n++
				}
			}
		}
	}
	return n
}

// InGrid reports whether position addresses an existing slot of floor.
func InGrid(floor Floor, position string, rows int) bool {
	pos, ok := ParsePosition(position)
	if !ok {
		return false
	}
	return pos.Column >= 1 && pos.Column <= floor.Columns(pos.Side) &&
		pos.Row >= 1 && pos.Row <= rows
}

// Units returns the total quantity stored inside the grid.
func (m FloorMap) Units() int {
	total := 0
	for _, area := range [][]MapColumn{m.Left, m.Right} {
		for _, c := range area {
			for _, s := range c.Slots {
				total += s.Units()
			}
		}
	}
	return total
}
