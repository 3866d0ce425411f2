package dataset

import (
	"testing"
	"time"

	"github.com/callscope/backend/internal/types"
)

func someRecords(n int) []types.CallRecord {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out := make([]types.CallRecord, n)
	for i := range out {
		at := base.Add(time.Duration(i) * time.Minute)
		out[i] = types.CallRecord{CallTime: at, Start: at, End: at.Add(time.Minute)}
	}
	return out
}

func TestRegistryAddGet(t *testing.T) {
	r := NewRegistry(4)

	ds := r.Add("calls.csv", someRecords(3), 1, "2006-01-02 15:04:05")
	if ds.ID == "" {
		t.Fatal("expected generated dataset ID")
	}

	got, ok := r.Get(ds.ID)
	if !ok {
		t.Fatal("expected dataset to be found")
	}
	if got.Name != "calls.csv" || len(got.Records) != 3 || got.Dropped != 1 {
		t.Errorf("unexpected dataset: %+v", got)
	}
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry(4)
	if _, ok := r.Get("nope"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry(4)
	ds := r.Add("calls.csv", someRecords(1), 0, "")

	if !r.Delete(ds.ID) {
		t.Error("expected delete to succeed")
	}
	if r.Delete(ds.ID) {
		t.Error("expected second delete to report missing")
	}
	if _, ok := r.Get(ds.ID); ok {
		t.Error("expected dataset gone after delete")
	}
}

func TestRegistryListNewestFirst(t *testing.T) {
	r := NewRegistry(4)

	first := r.Add("first.csv", someRecords(1), 0, "")
	time.Sleep(5 * time.Millisecond)
	second := r.Add("second.csv", someRecords(1), 0, "")

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest first, got %s then %s", list[0].Name, list[1].Name)
	}
}

func TestRegistryEvictsOldest(t *testing.T) {
	r := NewRegistry(2)

	oldest := r.Add("a.csv", someRecords(1), 0, "")
	time.Sleep(5 * time.Millisecond)
	r.Add("b.csv", someRecords(1), 0, "")
	time.Sleep(5 * time.Millisecond)
	r.Add("c.csv", someRecords(1), 0, "")

	if _, ok := r.Get(oldest.ID); ok {
		t.Error("expected oldest dataset to be evicted")
	}

	stats := r.Stats()
	if stats.Datasets != 2 {
		t.Errorf("expected 2 datasets after eviction, got %d", stats.Datasets)
	}
}

func TestRegistryStats(t *testing.T) {
	r := NewRegistry(0)
	r.Add("a.csv", someRecords(3), 0, "")
	r.Add("b.csv", someRecords(2), 0, "")

	stats := r.Stats()
	if stats.Datasets != 2 {
		t.Errorf("expected 2 datasets, got %d", stats.Datasets)
	}
	if stats.Records != 5 {
		t.Errorf("expected 5 records, got %d", stats.Records)
	}
}
