package persistence

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/outofforest/roster/records"
)

// Store represents persistent storage of record slots. Each slot is backed by
// its own file in the backing filesystem.
type Store struct {
	fsys     FS
	capacity int
}

// OpenStore opens the persistent store.
func OpenStore(fsys FS) (*Store, error) {
	sBlock, err := loadSuperblock(fsys)
	if err != nil {
		return nil, err
	}
	if err := validateSuperblock(sBlock); err != nil {
		return nil, err
	}

	return &Store{
		fsys:     fsys,
		capacity: int(sBlock.Capacity),
	}, nil
}

// Capacity returns the number of slots available in the store.
func (s *Store) Capacity() int {
	return s.capacity
}

// ReadSlot reads raw slot bytes from the addressed slot.
func (s *Store) ReadSlot(index int) ([]byte, error) {
	if index < 0 || index >= s.capacity {
		return nil, errors.Errorf("invalid slot index: %d, capacity: %d", index, s.capacity)
	}

	b, err := s.fsys.ReadFile(SlotFilename(index))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// WriteSlot writes raw slot bytes to the addressed slot, fully overwriting
// previous contents. The write is not atomic, a failure may leave partial
// contents in the backing file.
func (s *Store) WriteSlot(index int, p []byte) error {
	if index < 0 || index >= s.capacity {
		return errors.Errorf("invalid slot index: %d, capacity: %d", index, s.capacity)
	}

	if err := s.fsys.WriteFile(SlotFilename(index), p); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Sync forces data to be written to the backing filesystem.
func (s *Store) Sync() error {
	return errors.WithStack(s.fsys.Sync())
}

// SlotFilename returns the name of the file backing the slot.
func SlotFilename(index int) string {
	return fmt.Sprintf("data_%d.txt", index)
}

func validateSuperblock(sBlock Superblock) error {
	if sBlock.StoreID&rosterSubject != rosterSubject {
		return errors.New("filesystem does not contain a record store")
	}

	checksumComputed := sBlock.ComputeChecksum()
	if sBlock.Checksum != checksumComputed {
		return errors.Errorf("checksum mismatch for the superblock, computed: 0x%016x, stored: 0x%016x",
			uint64(checksumComputed), uint64(sBlock.Checksum))
	}

	if sBlock.SchemaVersion != SuperblockV0 {
		return errors.Errorf("unsupported superblock schema version: %d", sBlock.SchemaVersion)
	}

	if sBlock.FieldLength != records.MaxFieldLength || sBlock.NumFields != records.NumFields {
		return errors.Errorf("record layout mismatch, expected %d fields of %d characters, stored: %d fields of %d characters",
			records.NumFields, records.MaxFieldLength, sBlock.NumFields, sBlock.FieldLength)
	}

	return nil
}
