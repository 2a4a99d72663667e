package roster

import (
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/outofforest/roster/persistence"
	"github.com/outofforest/roster/records"
)

// Errors returned by store operations.
var (
	// ErrCapacityExceeded is returned when appending to a full store.
	ErrCapacityExceeded = errors.New("record store is full")

	// ErrNotFound is returned when no record matches the requested identifier.
	ErrNotFound = errors.New("record not found")
)

// Logger is a fire-and-forget sink for non-fatal store warnings.
type Logger interface {
	Warnf(format string, args ...any)
}

// Store is a bounded record store keeping each slot in its own backing file.
// Every operation holds the store-wide lock for its full duration, so at most
// one filesystem operation on the store is in flight at a time.
type Store struct {
	mu     sync.Mutex
	store  *persistence.Store
	lookup Lookup
	log    Logger
	count  int
}

// New returns a new record store on top of opened persistent storage.
// The appended record count starts at zero in every process, it is not
// recovered from the filesystem contents.
func New(store *persistence.Store, opts ...Option) *Store {
	s := &Store{
		store:  store,
		lookup: LinearLookup{},
		log:    stdLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the number of slots available in the store.
func (s *Store) Capacity() int {
	return s.store.Capacity()
}

// Count returns the number of records appended so far.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.count
}

// WriteSlot serializes the record into the slot's backing file, fully
// overwriting prior contents. Writing an out-of-range slot is a caller
// contract violation and is rejected. There is no atomic replace, a failed
// write may leave partial contents behind.
func (s *Store) WriteSlot(index int, r records.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeSlot(index, r)
}

// ReadSlot deserializes the slot's backing file. On any read or parse failure
// the zero record is returned and a warning is emitted through the sink. A
// zero result means "not authoritatively present", not necessarily "deleted".
func (s *Store) ReadSlot(index int) records.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSlot(index)
}

// FindByKey returns the first record whose identifier matches id, scanning
// slots in increasing order.
func (s *Store) FindByKey(id string) (records.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, r, exists := s.lookup.Find(slotView{s: s}, id)
	return r, exists
}

// Append writes the record to the slot addressed by the current count and
// increments the count. Slots vacated by DeleteByKey are never reclaimed,
// repeated delete and append leaks them until the capacity is exhausted.
func (s *Store) Append(r records.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count >= s.store.Capacity() {
		return 0, errors.WithStack(ErrCapacityExceeded)
	}

	if err := s.writeSlot(s.count, r); err != nil {
		return 0, err
	}

	index := s.count
	s.count++
	return index, nil
}

// DeleteByKey overwrites the record matching id with the zero tombstone.
// The backing file stays in place.
func (s *Store) DeleteByKey(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, _, exists := s.lookup.Find(slotView{s: s}, id)
	if !exists {
		return errors.WithStack(ErrNotFound)
	}

	return s.writeSlot(index, records.Record{})
}

func (s *Store) writeSlot(index int, r records.Record) error {
	return s.store.WriteSlot(index, r.Marshal())
}

func (s *Store) readSlot(index int) records.Record {
	b, err := s.store.ReadSlot(index)
	if err != nil {
		s.log.Warnf("failed to read slot %d: %v", index, err)
		return records.Record{}
	}

	r, err := records.Unmarshal(b)
	if err != nil {
		s.log.Warnf("failed to parse slot %d: %v", index, err)
		return records.Record{}
	}
	return r
}

// slotView exposes the unlocked read path to lookups. The caller holds the
// store lock.
type slotView struct {
	s *Store
}

// Capacity returns the number of slots available in the store.
func (v slotView) Capacity() int {
	return v.s.store.Capacity()
}

// Slot returns the record stored in the slot.
func (v slotView) Slot(index int) records.Record {
	return v.s.readSlot(index)
}

type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...any) {
	log.Printf("WARN "+format, args...)
}
