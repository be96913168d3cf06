package state

import (
	"testing"

	"github.com/hamed0406/anomalydash/internal/domain"
)

func rec(id int64) domain.Record {
	return domain.Record{ID: &id}
}

func TestStore_ApplyInOrder(t *testing.T) {
	s := New()

	s1 := s.NextSeq()
	s2 := s.NextSeq()
	if s2 <= s1 {
		t.Fatalf("sequence not monotonic: %d then %d", s1, s2)
	}

	if !s.ApplyRecords(s1, []domain.Record{rec(1)}) {
		t.Fatal("first apply rejected")
	}
	if !s.ApplyRecords(s2, []domain.Record{rec(2)}) {
		t.Fatal("newer apply rejected")
	}
	got := s.Records()
	if len(got) != 1 || *got[0].ID != 2 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if s.LastUpdated().IsZero() {
		t.Fatal("expected LastUpdated set")
	}
}

func TestStore_DiscardsStaleResponse(t *testing.T) {
	s := New()

	older := s.NextSeq()
	newer := s.NextSeq()

	// the request issued later resolves first
	if !s.ApplyRecords(newer, []domain.Record{rec(2)}) {
		t.Fatal("newer apply rejected")
	}
	if s.ApplyRecords(older, []domain.Record{rec(1)}) {
		t.Fatal("stale apply must be discarded")
	}

	got := s.Records()
	if len(got) != 1 || *got[0].ID != 2 {
		t.Fatalf("stale data overwrote newer snapshot: %+v", got)
	}
}

func TestStore_StatisticsIndependent(t *testing.T) {
	s := New()
	if s.Statistics() != nil {
		t.Fatal("expected nil statistics before first fetch")
	}
	s.ApplyStatistics(&domain.Statistics{TotalRecords: 10})
	if st := s.Statistics(); st == nil || st.TotalRecords != 10 {
		t.Fatalf("statistics wrong: %+v", st)
	}
	// records unaffected
	if len(s.Records()) != 0 {
		t.Fatal("records must be untouched by statistics apply")
	}
}
