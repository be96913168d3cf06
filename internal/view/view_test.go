package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/anomalydash/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func rec(id int64, value, confidence float64) domain.Record {
	return domain.Record{
		ID:         ptr(id),
		Value:      ptr(value),
		Confidence: ptr(confidence),
	}
}

func ids(records []domain.Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		if r.ID == nil {
			out = append(out, -1)
			continue
		}
		out = append(out, *r.ID)
	}
	return out
}

func TestSort_AscendingAndDescending(t *testing.T) {
	in := []domain.Record{rec(3, 9.0, 0.2), rec(1, 7.0, 0.9), rec(2, 8.0, 0.5)}

	asc := Sort(in, KeyValue, Asc)
	assert.Equal(t, []int64{1, 2, 3}, ids(asc))

	desc := Sort(in, KeyValue, Desc)
	assert.Equal(t, []int64{3, 2, 1}, ids(desc))

	// input untouched
	assert.Equal(t, []int64{3, 1, 2}, ids(in))
}

func TestSort_StableOnTies(t *testing.T) {
	// equal confidence everywhere: order must be exactly the input order
	in := []domain.Record{rec(5, 1, 0.5), rec(2, 2, 0.5), rec(9, 3, 0.5), rec(1, 4, 0.5)}

	for _, dir := range []Direction{Asc, Desc} {
		got := Sort(in, KeyConfidence, dir)
		assert.Equal(t, []int64{5, 2, 9, 1}, ids(got), "direction %s", dir)
	}
}

func TestSort_EmptyKeyIsIdentity(t *testing.T) {
	in := []domain.Record{rec(2, 1, 1), rec(1, 2, 2)}
	got := Sort(in, "", Desc)
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestSort_NilFieldsOrderFirst(t *testing.T) {
	noValue := domain.Record{ID: ptr(int64(7))}
	in := []domain.Record{rec(1, 5, 0.1), noValue, rec(2, 3, 0.2)}

	got := Sort(in, KeyValue, Asc)
	assert.Equal(t, []int64{7, 2, 1}, ids(got))
}

func TestToggle(t *testing.T) {
	s := Toggle(SortState{}, KeyID)
	assert.Equal(t, SortState{Key: KeyID, Direction: Asc}, s)

	s = Toggle(s, KeyID)
	assert.Equal(t, SortState{Key: KeyID, Direction: Desc}, s)

	s = Toggle(s, KeyID)
	assert.Equal(t, SortState{Key: KeyID, Direction: Asc}, s)

	// new key resets to ascending
	s = Toggle(s, KeyValue)
	assert.Equal(t, SortState{Key: KeyValue, Direction: Asc}, s)
}

func TestToggle_RoundTripReproducesAscendingOrder(t *testing.T) {
	in := []domain.Record{rec(3, 3, 0.3), rec(1, 1, 0.1), rec(2, 2, 0.2)}

	s := Toggle(SortState{}, KeyID)
	first := Sort(in, s.Key, s.Direction)
	s = Toggle(s, KeyID)
	_ = Sort(in, s.Key, s.Direction)
	s = Toggle(s, KeyID)
	third := Sort(in, s.Key, s.Direction)

	assert.Equal(t, ids(first), ids(third))
}

func TestPaginate_PagesReconstructInput(t *testing.T) {
	in := make([]domain.Record, 123)
	for i := range in {
		in[i] = rec(int64(i), float64(i), 0)
	}

	total := TotalPages(len(in), PageSize)
	require.Equal(t, 3, total)

	var all []domain.Record
	for p := 1; p <= total; p++ {
		page := Paginate(in, PageSize, p)
		if p < total {
			assert.Len(t, page, PageSize)
		} else {
			assert.Len(t, page, 23)
		}
		all = append(all, page...)
	}
	assert.Equal(t, ids(in), ids(all))
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	in := make([]domain.Record, 60)
	for i := range in {
		in[i] = rec(int64(i), 0, 0)
	}

	// below range clamps to the first page
	assert.Equal(t, ids(in[:50]), ids(Paginate(in, PageSize, 0)))
	// above range clamps to the last page
	assert.Equal(t, ids(in[50:]), ids(Paginate(in, PageSize, 99)))

	assert.Nil(t, Paginate(nil, PageSize, 1))
}

func TestCounts(t *testing.T) {
	in := []domain.Record{
		{IsAnomaly: ptr(true)},
		{IsAnomaly: ptr(false)},
		{}, // nil flag counts as normal
		{IsAnomaly: ptr(true)},
	}
	anomalies, normals := Counts(in)
	assert.Equal(t, 2, anomalies)
	assert.Equal(t, 2, normals)
}
