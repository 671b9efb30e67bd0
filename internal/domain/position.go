package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Side identifies one of the two storage areas of a floor.
type Side string

const (
	SideLeft  Side = "L"
	SideRight Side = "R"
)

// Sides lists the storage areas in display order.
var Sides = []Side{SideLeft, SideRight}

var positionPattern = regexp.MustCompile(`^([LR])(\d+)-(\d+)$`)

// Position is a slot address within a floor, e.g. "L3-2".
type Position struct {
	Side   Side `json:"side"`
	Column int  `json:"column"`
	Row    int  `json:"row"`
}

// String returns the canonical form of the position.
func (p Position) String() string {
	return FormatPosition(p.Side, p.Column, p.Row)
}

// FormatPosition returns "{side}{column}-{row}". Ranges are not checked.
func FormatPosition(side Side, column, row int) string {
	return fmt.Sprintf("%s%d-%d", side, column, row)
}

// ParsePosition decodes text of the form "L3-2". It reports false when the
// text does not match; it never returns an error.
func ParsePosition(text string) (Position, bool) {
	m := positionPattern.FindStringSubmatch(text)
	if m == nil {
		return Position{}, false
	}
	column, err := strconv.Atoi(m[2])
	if err != nil {
		return Position{}, false
	}
	row, err := strconv.Atoi(m[3])
	if err != nil {
		return Position{}, false
	}
	return Position{Side: Side(m[1]), Column: column, Row: row}, true
}

// NormalizePosition trims and uppercases raw user input so "l3-2 " parses.
func NormalizePosition(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// CanonicalPosition normalizes and parses text, returning the canonical
// form so "l01-1 " and "L1-1" name the same slot.
func CanonicalPosition(text string) (string, bool) {
	pos, ok := ParsePosition(NormalizePosition(text))
	if !ok {
		return "", false
	}
	return pos.String(), true
}
