package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MinColumns = 1
	MaxColumns = 20

	MinFloors = 1
	MaxFloors = 10

	// DefaultRowsPerColumn is the number of pallet rows stacked in each column.
	DefaultRowsPerColumn = 3
)

// One leading letter followed by 4-6 letters, digits or hyphens.
var modelPattern = regexp.MustCompile(`^[A-Z][A-Z0-9-]{4,6}$`)

// FormatModel returns the canonical (trimmed, uppercased) model code.
func FormatModel(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// ValidateModel reports whether the normalized model matches the model pattern.
func ValidateModel(model string) bool {
	return modelPattern.MatchString(FormatModel(model))
}

// ValidateQuantity reports whether text is an integer strictly greater than zero.
func ValidateQuantity(text string) bool {
	_, ok := parseQuantity(text)
	return ok
}

func parseQuantity(text string) (int, bool) {
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseQuantity converts raw quantity text, rejecting anything that is not a
// positive integer.
func ParseQuantity(text string) (int, error) {
	n, ok := parseQuantity(strings.TrimSpace(text))
	if !ok {
		return 0, Reject(RuleQuantityRange, "quantity must be a positive integer, got %q", text)
	}
	return n, nil
}

// ValidateColumns reports whether n lies in [MinColumns, MaxColumns].
func ValidateColumns(n int) bool {
	return n >= MinColumns && n <= MaxColumns
}

// ValidateFloorCount reports whether n lies in [MinFloors, MaxFloors].
func ValidateFloorCount(n int) bool {
	return n >= MinFloors && n <= MaxFloors
}
