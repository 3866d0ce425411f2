// Package dataset keeps normalized record sets in memory for the duration
// of an analysis session and derives filtered views over them. The base
// record set of a dataset is immutable once registered; filters always
// produce fresh subsets.
package dataset

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/callscope/backend/internal/types"
)

// Dataset is one uploaded, normalized CDR export.
type Dataset struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	UploadedAt time.Time          `json:"uploadedAt"`
	Records    []types.CallRecord `json:"-"`
	Dropped    int                `json:"dropped"`
	Layout     string             `json:"layout"`
}

// Stats is a point-in-time view of the registry for status broadcasts.
type Stats struct {
	Datasets int `json:"datasets"`
	Records  int `json:"records"`
}

// Registry holds all datasets of the current session. Bounded: when full,
// the oldest upload is evicted.
type Registry struct {
	datasets map[string]*Dataset
	limit    int
	mu       sync.RWMutex
}

// NewRegistry creates a registry holding at most limit datasets.
// A limit of zero or less means unbounded.
func NewRegistry(limit int) *Registry {
	return &Registry{
		datasets: make(map[string]*Dataset),
		limit:    limit,
	}
}

// Add registers a normalized record set and returns the stored dataset.
func (r *Registry) Add(name string, records []types.CallRecord, dropped int, layout string) *Dataset {
	ds := &Dataset{
		ID:         uuid.New().String(),
		Name:       name,
		UploadedAt: time.Now().UTC(),
		Records:    records,
		Dropped:    dropped,
		Layout:     layout,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.datasets) >= r.limit {
		r.evictOldestLocked()
	}
	r.datasets[ds.ID] = ds
	return ds
}

// Get returns a dataset by ID.
func (r *Registry) Get(id string) (*Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[id]
	return ds, ok
}

// Delete removes a dataset. Returns false if it was not present.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.datasets[id]; !ok {
		return false
	}
	delete(r.datasets, id)
	return true
}

// List returns all datasets ordered by upload time, newest first.
func (r *Registry) List() []*Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Stats reports the current registry size.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{Datasets: len(r.datasets)}
	for _, ds := range r.datasets {
		s.Records += len(ds.Records)
	}
	return s
}

func (r *Registry) evictOldestLocked() {
	var oldest *Dataset
	for _, ds := range r.datasets {
		if oldest == nil || ds.UploadedAt.Before(oldest.UploadedAt) {
			oldest = ds
		}
	}
	if oldest != nil {
		delete(r.datasets, oldest.ID)
	}
}
