package persistence

import (
	"io/fs"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/outofforest/photon"
	"github.com/pkg/errors"

	"github.com/outofforest/roster/records"
)

const (
	// SuperblockFilename is the name of the file identifying the record store
	// on the backing filesystem.
	SuperblockFilename = "superblock"

	// rosterSubject defines an identifier used to detect if a record store exists on the filesystem.
	rosterSubject = 0b0101001001001111010100110101010001000101010100100100010001000010
)

// SchemaVersion defines version of the superblock schema. It is 64 bits wide
// so the superblock struct contains no padding bytes, the checksum is computed
// over the raw struct memory and padding content is not guaranteed to survive
// struct copies.
type SchemaVersion uint64

// Schema versions.
const (
	SuperblockV0 SchemaVersion = iota
)

// Hash represents hash.
type Hash uint64

// FS is the interface required from the backing filesystem. The store assumes
// exclusive ownership of the file namespace behind it.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	Sync() error
}

// Superblock describes the record store stored on the backing filesystem.
// Everything starts and ends here.
type Superblock struct {
	SchemaVersion SchemaVersion
	Checksum      Hash
	StoreID       uint64
	Capacity      uint64
	FieldLength   uint64
	NumFields     uint64
}

// ComputeChecksum computes checksum of the superblock.
func (sb Superblock) ComputeChecksum() Hash {
	sb.Checksum = 0
	return Hash(xxhash.Sum64(photon.NewFromValue(&sb).B))
}

// ErrAlreadyInitialized is returned if during initialization, another record store is detected on the filesystem.
var ErrAlreadyInitialized = errors.New("record store has been already initialized on the provided filesystem")

var errMalformedSuperblock = errors.New("malformed superblock")

// Initialize formats the backing filesystem for a record store of the given capacity.
func Initialize(fsys FS, capacity uint64, overwrite bool) error {
	if err := validateFS(fsys, capacity, overwrite); err != nil {
		return err
	}

	sBlock := photon.NewFromValue(&Superblock{
		SchemaVersion: SuperblockV0,
		StoreID:       rand.Uint64() | rosterSubject,
		Capacity:      capacity,
		FieldLength:   records.MaxFieldLength,
		NumFields:     records.NumFields,
	})
	sBlock.V.Checksum = sBlock.V.ComputeChecksum()

	if err := fsys.WriteFile(SuperblockFilename, sBlock.B); err != nil {
		return errors.WithStack(err)
	}

	return fsys.Sync()
}

func validateFS(fsys FS, capacity uint64, overwrite bool) error {
	if capacity == 0 {
		return errors.New("capacity must be positive")
	}

	sBlock, err := loadSuperblock(fsys)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, errMalformedSuperblock):
		// Nothing recognizable on the filesystem, free to format.
		return nil
	default:
		return err
	}

	if sBlock.StoreID&rosterSubject == rosterSubject && !overwrite {
		return errors.WithStack(ErrAlreadyInitialized)
	}

	return nil
}

func loadSuperblock(fsys FS) (Superblock, error) {
	b, err := fsys.ReadFile(SuperblockFilename)
	if err != nil {
		return Superblock{}, errors.WithStack(err)
	}

	sBlock := photon.NewFromValue(&Superblock{})
	if len(b) != len(sBlock.B) {
		return Superblock{}, errors.Wrapf(errMalformedSuperblock, "expected %d bytes, got: %d", len(sBlock.B), len(b))
	}
	copy(sBlock.B, b)

	return *sBlock.V, nil
}
