package domain_test

import (
	"testing"

	"github.com/abdidvp/rackmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPosition(t *testing.T) {
	assert.Equal(t, "L3-2", domain.FormatPosition(domain.SideLeft, 3, 2))
	assert.Equal(t, "R12-1", domain.FormatPosition(domain.SideRight, 12, 1))
	assert.Equal(t, "L0-0", domain.FormatPosition(domain.SideLeft, 0, 0))
}

func TestParsePosition_Valid(t *testing.T) {
	pos, ok := domain.ParsePosition("L3-2")
	require.True(t, ok)
	assert.Equal(t, domain.Position{Side: domain.SideLeft, Column: 3, Row: 2}, pos)
	assert.Equal(t, "L3-2", pos.String())
}

func TestParsePosition_RoundTrip(t *testing.T) {
	for _, side := range domain.Sides {
		for col := 0; col <= 21; col++ {
			for row := 0; row <= 4; row++ {
				pos, ok := domain.ParsePosition(domain.FormatPosition(side, col, row))
				require.True(t, ok)
				assert.Equal(t, domain.Position{Side: side, Column: col, Row: row}, pos)
			}
		}
	}
}

func TestParsePosition_Rejects(t *testing.T) {
	for _, text := range []string{
		"", "X1-1", "L1", "L-1-1", "l1-1", "L1-1 ", " L1-1", "LR1-1", "L1-", "L1--1", "R1-1-1", "L١-1",
		"L99999999999999999999-1",
	} {
		_, ok := domain.ParsePosition(text)
		assert.False(t, ok, "expected %q to be rejected", text)
	}
}

func TestParsePosition_LeadingZeros(t *testing.T) {
	pos, ok := domain.ParsePosition("R007-02")
	require.True(t, ok)
	assert.Equal(t, 7, pos.Column)
	assert.Equal(t, 2, pos.Row)
	assert.Equal(t, "R7-2", pos.String())
}

func TestNormalizePosition(t *testing.T) {
	assert.Equal(t, "L3-2", domain.NormalizePosition("  l3-2 "))
}

func TestCanonicalPosition(t *testing.T) {
	for _, text := range []string{"L1-1", "L01-1", " l1-01 ", "l001-001"} {
		got, ok := domain.CanonicalPosition(text)
		require.True(t, ok, text)
		assert.Equal(t, "L1-1", got, text)
	}

	_, ok := domain.CanonicalPosition("X1-1")
	assert.False(t, ok)
}
