package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/TomasB/ipcheck/internal/data"
)

func record(address, city string) data.Record {
	rec := data.EmptyRecord(address)
	rec.City = city
	return rec
}

func TestStore_RecordIsIdempotent(t *testing.T) {
	s := NewStore()

	if !s.Record("8.8.8.8", record("8.8.8.8", "Mountain View")) {
		t.Fatal("expected first record to be added")
	}
	if s.Record("8.8.8.8", record("8.8.8.8", "Somewhere Else")) {
		t.Error("expected repeated address to be ignored")
	}

	entries := s.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Record.City != "Mountain View" {
		t.Errorf("expected first-seen record to win, got city %s", entries[0].Record.City)
	}
}

func TestStore_AllMostRecentFirst(t *testing.T) {
	s := NewStore()
	for _, addr := range []string{"1.1.1.1", "8.8.8.8", "9.9.9.9"} {
		s.Record(addr, record(addr, "x"))
	}
	s.Record("1.1.1.1", record("1.1.1.1", "again"))

	entries := s.All()
	want := []string{"9.9.9.9", "8.8.8.8", "1.1.1.1"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, addr := range want {
		if entries[i].Address != addr {
			t.Errorf("entry %d: expected %s, got %s", i, addr, entries[i].Address)
		}
	}
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Record("1.1.1.1", record("1.1.1.1", "Sydney"))

	entries := s.All()
	entries[0].Address = "mutated"

	if got := s.All()[0].Address; got != "1.1.1.1" {
		t.Errorf("store was mutated through All, got %s", got)
	}
}

func TestStore_ExactStringMatch(t *testing.T) {
	s := NewStore()
	s.Record("8.8.8.8", record("8.8.8.8", "a"))
	s.Record("008.8.8.8", record("008.8.8.8", "b"))

	if s.Len() != 2 {
		t.Errorf("expected distinct strings to be distinct entries, got %d", s.Len())
	}
}

func TestStore_EmptyStore(t *testing.T) {
	if got := NewStore().All(); len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestStore_ConcurrentRecord(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := fmt.Sprintf("10.0.0.%d", i%10)
			s.Record(addr, record(addr, "x"))
		}(i)
	}
	wg.Wait()

	if s.Len() != 10 {
		t.Errorf("expected 10 distinct entries, got %d", s.Len())
	}
}
