package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/filmdesk/filmdesk/pkg/domain/interfaces"
	"github.com/filmdesk/filmdesk/pkg/domain/model/telemetry"
)

type memoryRecord struct {
	kind  telemetry.Kind
	value string
}

// Memory mirrors the SQLite repository semantics in process memory. It exists
// for tests and for running the bot without a telemetry path configured.
type Memory struct {
	mu      sync.RWMutex
	records []memoryRecord
}

var _ interfaces.TelemetryRepository = &Memory{}

func NewMemory() *Memory {
	return &Memory{}
}

func (x *Memory) Record(ctx context.Context, kind telemetry.Kind, value string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.records = append(x.records, memoryRecord{kind: kind, value: strings.ToLower(value)})
	return nil
}

func (x *Memory) TopQueries(ctx context.Context, limit int) ([]telemetry.QueryCount, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, rec := range x.records {
		if _, ok := counts[rec.value]; !ok {
			firstSeen[rec.value] = i
		}
		counts[rec.value]++
	}

	results := make([]telemetry.QueryCount, 0, len(counts))
	for value, count := range counts {
		results = append(results, telemetry.QueryCount{Value: value, Count: count})
	}

	// Count descending, ties by first insertion. Same contract as the
	// SQLite query.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return firstSeen[results[i].Value] < firstSeen[results[j].Value]
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (x *Memory) Close() error {
	return nil
}

// Len reports the number of stored records. Test helper.
func (x *Memory) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

// Kinds returns the kind tags in insertion order. Test helper.
func (x *Memory) Kinds() []telemetry.Kind {
	x.mu.RLock()
	defer x.mu.RUnlock()
	kinds := make([]telemetry.Kind, len(x.records))
	for i, rec := range x.records {
		kinds[i] = rec.kind
	}
	return kinds
}

// Values returns the stored values in insertion order. Test helper.
func (x *Memory) Values() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	values := make([]string, len(x.records))
	for i, rec := range x.records {
		values[i] = rec.value
	}
	return values
}
