// Package view is the table view-model: a stateless transform over an
// immutable record list plus the small bit of UI state (sort key/direction,
// page number). It never touches the network or the clock.
package view

import (
	"sort"
	"strings"

	"github.com/hamed0406/anomalydash/internal/domain"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 50

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sortable field names, matching the wire names of Record.
const (
	KeyID         = "id"
	KeyTimestamp  = "timestamp"
	KeyValue      = "value"
	KeyIsAnomaly  = "isAnomaly"
	KeyConfidence = "confidence"
)

// SortState is the transient sort selection. Zero value means unsorted.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle applies a header click: same key flips the direction, a new key
// resets to ascending.
func Toggle(s SortState, key string) SortState {
	if s.Key == key {
		if s.Direction == Asc {
			return SortState{Key: key, Direction: Desc}
		}
		return SortState{Key: key, Direction: Asc}
	}
	return SortState{Key: key, Direction: Asc}
}

// less compares two records by key in ascending order. A nil field orders
// before any present value so missing data sinks to one end deterministically.
// Returns (less, equal).
func less(a, b domain.Record, key string) (bool, bool) {
	switch key {
	case KeyID:
		return cmpInt64(a.ID, b.ID)
	case KeyTimestamp:
		return cmpString(a.Timestamp, b.Timestamp)
	case KeyValue:
		return cmpFloat64(a.Value, b.Value)
	case KeyConfidence:
		return cmpFloat64(a.Confidence, b.Confidence)
	case KeyIsAnomaly:
		return cmpBool(a.IsAnomaly, b.IsAnomaly)
	default:
		return false, true
	}
}

func cmpInt64(a, b *int64) (bool, bool) {
	if a == nil || b == nil {
		return a == nil && b != nil, a == nil && b == nil
	}
	return *a < *b, *a == *b
}

func cmpFloat64(a, b *float64) (bool, bool) {
	if a == nil || b == nil {
		return a == nil && b != nil, a == nil && b == nil
	}
	return *a < *b, *a == *b
}

func cmpString(a, b *string) (bool, bool) {
	if a == nil || b == nil {
		return a == nil && b != nil, a == nil && b == nil
	}
	c := strings.Compare(*a, *b)
	return c < 0, c == 0
}

func cmpBool(a, b *bool) (bool, bool) {
	if a == nil || b == nil {
		return a == nil && b != nil, a == nil && b == nil
	}
	return !*a && *b, *a == *b
}

// Sort returns a sorted copy of records. The sort is stable: ties keep their
// original relative order. An empty key returns the input unchanged.
func Sort(records []domain.Record, key string, dir Direction) []domain.Record {
	if key == "" {
		return records
	}
	out := make([]domain.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		lt, eq := less(out[i], out[j], key)
		if eq {
			return false
		}
		if dir == Desc {
			return !lt
		}
		return lt
	})
	return out
}

// TotalPages reports how many pages a list of n records fills.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of records. An out-of-range page number
// is clamped into [1, TotalPages] rather than returning an empty slice.
func Paginate(records []domain.Record, pageSize, page int) []domain.Record {
	if pageSize <= 0 || len(records) == 0 {
		return nil
	}
	total := TotalPages(len(records), pageSize)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// Counts recomputes the anomaly/normal split on every call. Result sets are
// small (hundreds to low thousands), so nothing is cached.
func Counts(records []domain.Record) (anomalies, normals int) {
	for _, r := range records {
		if r.Anomalous() {
			anomalies++
		}
	}
	return anomalies, len(records) - anomalies
}
