package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate normalises a 1-based page request into an offset and limit.
// Out of range sizes fall back to DefaultPageSize. Pages past the last
// representable offset are clamped to it.
func Calculate(page, size int) (page1, offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page-1 > math.MaxInt/size {
		page = math.MaxInt/size + 1
	}
	return page, (page - 1) * size, size
}

// Window returns the part of items covered by offset and limit.
func Window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

func ParseUint(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
