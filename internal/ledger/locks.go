package ledger

import "sync"

// lockTable provides one mutex per record ID. Each record is the unit of
// mutual exclusion: an engine holds the record's lock for the whole
// validate+mutate (and payout) sequence, so two contributions racing on the
// same record serialize while operations on different records proceed
// independently.
//
// Locks are never removed; the table grows with the set of touched IDs,
// which is bounded by the number of records.
type lockTable struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for id and returns its unlock function.
func (t *lockTable) lock(id int64) func() {
	t.mu.Lock()
	m, ok := t.locks[id]
	if !ok {
		m = &sync.Mutex{}
		t.locks[id] = m
	}
	t.mu.Unlock()

	m.Lock()
	return m.Unlock
}
