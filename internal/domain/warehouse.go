package domain

import (
	"strconv"
	"strings"
)

// WarehouseState is the lifecycle of the warehouse as observed through the
// floor count.
type WarehouseState string

const (
	StateUninitialized WarehouseState = "uninitialized"
	StateInitialized   WarehouseState = "initialized"
)

// StateForFloorCount maps a floor count onto the lifecycle state.
func StateForFloorCount(count int) WarehouseState {
	if count > 0 {
		return StateInitialized
	}
	return StateUninitialized
}

// Status summarizes the warehouse for display.
type Status struct {
	State    WarehouseState `json:"state"`
	Floors   int            `json:"floors"`
	Products int            `json:"products"`
	Units    int            `json:"units"`
}

// Initialized reports whether setup has been completed.
func (s Status) Initialized() bool { return s.State == StateInitialized }

// FloorLayout is the column configuration of one floor during setup.
type FloorLayout struct {
	LeftColumns  int `json:"left_columns"  yaml:"left_columns"`
	RightColumns int `json:"right_columns" yaml:"right_columns"`
}

// ParseFloorLayout reads a "LEFTxRIGHT" pair such as "5x5". Column ranges
// are checked later, when the floor is validated.
func ParseFloorLayout(text string) (FloorLayout, error) {
	l, r, ok := strings.Cut(strings.ToLower(strings.TrimSpace(text)), "x")
	if ok {
		left, errL := strconv.Atoi(strings.TrimSpace(l))
		right, errR := strconv.Atoi(strings.TrimSpace(r))
		if errL == nil && errR == nil {
			return FloorLayout{LeftColumns: left, RightColumns: right}, nil
		}
	}
	return FloorLayout{}, Reject(RuleLayoutFormat, "layout %q must be LEFTxRIGHT column counts, e.g. 5x5", text)
}

// ParseFloorLayouts reads a comma-separated list of layouts, one per floor.
func ParseFloorLayouts(text string) ([]FloorLayout, error) {
	var layouts []FloorLayout
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := ParseFloorLayout(part)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}

// ResetConfirmation is the word a caller must supply to reset the warehouse.
const ResetConfirmation = "confirm"
