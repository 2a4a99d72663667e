package persistence

import (
	"testing"

	"github.com/outofforest/photon"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/roster/pkg/memfs"
	"github.com/outofforest/roster/records"
)

const capacity = 10

func TestInit(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	b, err := fsys.ReadFile(SuperblockFilename)
	requireT.NoError(err)

	sBlock := photon.NewFromValue(&Superblock{})
	requireT.Len(b, len(sBlock.B))
	copy(sBlock.B, b)

	requireT.EqualValues(rosterSubject, sBlock.V.StoreID&rosterSubject)
	requireT.EqualValues(SuperblockV0, sBlock.V.SchemaVersion)
	requireT.EqualValues(capacity, sBlock.V.Capacity)
	requireT.EqualValues(records.MaxFieldLength, sBlock.V.FieldLength)
	requireT.EqualValues(records.NumFields, sBlock.V.NumFields)
	requireT.Equal(sBlock.V.ComputeChecksum(), sBlock.V.Checksum)
}

func TestChecksumStableAcrossCopies(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	// The superblock travels by value between loading and validation, the
	// checksum must depend on field values only, never on struct memory the
	// fields don't cover.
	sBlock, err := loadSuperblock(fsys)
	requireT.NoError(err)
	requireT.NoError(validateSuperblock(sBlock))

	sBlockCopy := sBlock
	requireT.Equal(sBlock.ComputeChecksum(), sBlockCopy.ComputeChecksum())
	requireT.Equal(sBlock.Checksum, sBlockCopy.ComputeChecksum())

	b := photon.NewFromValue(&sBlockCopy).B
	stored, err := fsys.ReadFile(SuperblockFilename)
	requireT.NoError(err)
	requireT.Equal(stored, b)
}

func TestOverwrite(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	previousSBlock, err := loadSuperblock(fsys)
	requireT.NoError(err)

	requireT.ErrorIs(Initialize(fsys, capacity, false), ErrAlreadyInitialized)

	sameSBlock, err := loadSuperblock(fsys)
	requireT.NoError(err)
	requireT.Equal(previousSBlock, sameSBlock)

	requireT.NoError(Initialize(fsys, capacity, true))

	newSBlock, err := loadSuperblock(fsys)
	requireT.NoError(err)
	requireT.NotEqual(previousSBlock.StoreID, newSBlock.StoreID)
	requireT.NotEqual(previousSBlock.Checksum, newSBlock.Checksum)
	requireT.Equal(previousSBlock.Capacity, newSBlock.Capacity)
}

func TestZeroCapacity(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.Error(Initialize(fsys, 0, false))

	_, err := fsys.ReadFile(SuperblockFilename)
	requireT.Error(err)
}

func TestForeignSuperblockFile(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(fsys.WriteFile(SuperblockFilename, []byte("not a superblock")))

	requireT.NoError(Initialize(fsys, capacity, false))

	sBlock, err := loadSuperblock(fsys)
	requireT.NoError(err)
	requireT.NoError(validateSuperblock(sBlock))
}
