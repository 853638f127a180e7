package util

import "strconv"

// Default page sizes differ per entity list, they mirror what the clients
// already expect.
const (
	DefaultPageSize    = 8
	LaboratoryPageSize = 2
	SupplierPageSize   = 10
	UserPageSize       = 10
)

func Calculate(page, size, def int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	from = (page - 1) * size
	return from, size
}

// TotalPages is 0 for an empty collection, not 1.
func TotalPages(total int64, size int) int64 {
	if total <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
