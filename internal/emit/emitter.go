package emit

import (
	"context"
	"sort"
	"sync"
)

// Key is the composite index key for one job document.
type Key struct {
	Workflow string `json:"workflow"`
	Status   string `json:"status"`
	Site     string `json:"site"`
}

// Record pairs a key with its count contribution. The map step always emits
// a unit value; aggregation into totals happens downstream.
type Record struct {
	Key   Key `json:"key"`
	Value int `json:"value"`
}

// Unit builds the single record the map step emits for one document.
func Unit(workflow, status, site string) Record {
	return Record{Key: Key{Workflow: workflow, Status: status, Site: site}, Value: 1}
}

// Emitter receives map-step output for downstream aggregation.
type Emitter interface {
	Emit(ctx context.Context, rec Record) error
}

// Collector is an in-memory Emitter used by tests and CLI summaries. It is
// safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	records []Record
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Emit appends the record.
func (c *Collector) Emit(_ context.Context, rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return nil
}

// Records returns a copy of everything emitted so far, in emission order.
func (c *Collector) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]Record, len(c.records))
	copy(cp, c.records)
	return cp
}

// Totals sums collected values per key, sorted by workflow, status, site.
// Convenience for CLI summaries; the real aggregation stage lives outside
// this repository.
func (c *Collector) Totals() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	sums := make(map[Key]int, len(c.records))
	for _, rec := range c.records {
		sums[rec.Key] += rec.Value
	}
	totals := make([]Record, 0, len(sums))
	for key, value := range sums {
		totals = append(totals, Record{Key: key, Value: value})
	}
	sort.Slice(totals, func(i, j int) bool {
		a, b := totals[i].Key, totals[j].Key
		if a.Workflow != b.Workflow {
			return a.Workflow < b.Workflow
		}
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		return a.Site < b.Site
	})
	return totals
}
