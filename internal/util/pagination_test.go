package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	from, limit := Calculate(1, 2, DefaultPageSize)
	require.Equal(t, 0, from)
	require.Equal(t, 2, limit)

	from, limit = Calculate(3, 10, DefaultPageSize)
	require.Equal(t, 20, from)
	require.Equal(t, 10, limit)

	// out-of-range inputs clamp to page 1 and the entity default
	from, limit = Calculate(0, 0, LaboratoryPageSize)
	require.Equal(t, 0, from)
	require.Equal(t, LaboratoryPageSize, limit)

	from, limit = Calculate(-5, -1, SupplierPageSize)
	require.Equal(t, 0, from)
	require.Equal(t, SupplierPageSize, limit)
}

func TestTotalPages(t *testing.T) {
	require.EqualValues(t, 0, TotalPages(0, 8))
	require.EqualValues(t, 0, TotalPages(-3, 8))
	require.EqualValues(t, 1, TotalPages(1, 8))
	require.EqualValues(t, 1, TotalPages(8, 8))
	require.EqualValues(t, 2, TotalPages(9, 8))
	require.EqualValues(t, 2, TotalPages(3, 2))
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 1, ParseIntDefault("", 1))
	require.Equal(t, 7, ParseIntDefault("7", 1))
	require.Equal(t, 4, ParseIntDefault("seven", 4))
}
