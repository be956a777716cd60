package inmem

import (
	"sort"
	"sync"
)

// table is a mutex protected id -> record map with an id sequence.
type table[T any] struct {
	mu      sync.Mutex
	records map[int]T
	maxID   int
}

func newTable[T any]() *table[T] {
	return &table[T]{records: make(map[int]T)}
}

func (t *table[T]) get(id int) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.records[id]
	return record, ok
}

// list returns the records in id order.
func (t *table[T]) list() []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	records := make([]T, len(ids))
	for i, id := range ids {
		records[i] = t.records[id]
	}
	return records
}

// upsert stores record under *id, assigning a new id when *id is not set.
func (t *table[T]) upsert(id *int, record *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if *id <= 0 {
		t.maxID++
		*id = t.maxID
	} else if *id > t.maxID {
		t.maxID = *id
	}
	t.records[*id] = *record
}

func (t *table[T]) delete(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.records, id)
}

// find returns the first record, in id order, accepted by f.
func (t *table[T]) find(f func(T) bool) (T, bool) {
	for _, record := range t.list() {
		if f(record) {
			return record, true
		}
	}
	var zero T
	return zero, false
}
