package persistence

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/roster/pkg/memfs"
)

func TestValidInitialization(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	store, err := OpenStore(fsys)
	requireT.NoError(err)
	requireT.Equal(capacity, store.Capacity())
}

func TestOpenUninitialized(t *testing.T) {
	requireT := require.New(t)

	store, err := OpenStore(memfs.New())
	requireT.Error(err)
	requireT.Nil(store)
}

func TestOpenCorruptedSuperblock(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	b, err := fsys.ReadFile(SuperblockFilename)
	requireT.NoError(err)
	b[len(b)-1]++
	requireT.NoError(fsys.WriteFile(SuperblockFilename, b))

	store, err := OpenStore(fsys)
	requireT.Error(err)
	requireT.Nil(store)
}

func TestReadWriteSlot(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	store, err := OpenStore(fsys)
	requireT.NoError(err)

	data := []byte("JohnDoe\nEMP001\n30\nSeniorEngineer\n50000\n")
	requireT.NoError(store.WriteSlot(0, data))

	b, err := store.ReadSlot(0)
	requireT.NoError(err)
	requireT.Equal(data, b)

	// The slot is backed by its deterministically named file.
	b, err = fsys.ReadFile("data_0.txt")
	requireT.NoError(err)
	requireT.Equal(data, b)

	requireT.NoError(store.WriteSlot(0, []byte("\n\n\n\n\n")))

	b, err = store.ReadSlot(0)
	requireT.NoError(err)
	requireT.Equal([]byte("\n\n\n\n\n"), b)
}

func TestReadUnwrittenSlot(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	store, err := OpenStore(fsys)
	requireT.NoError(err)

	b, err := store.ReadSlot(capacity - 1)
	requireT.ErrorIs(err, fs.ErrNotExist)
	requireT.Nil(b)
}

func TestSlotIndexOutOfRange(t *testing.T) {
	requireT := require.New(t)

	fsys := memfs.New()
	requireT.NoError(Initialize(fsys, capacity, false))

	store, err := OpenStore(fsys)
	requireT.NoError(err)

	for _, index := range []int{-1, capacity, capacity + 1} {
		requireT.Error(store.WriteSlot(index, []byte("\n\n\n\n\n")))

		_, err := store.ReadSlot(index)
		requireT.Error(err)
	}
}

func TestSlotFilename(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal("data_0.txt", SlotFilename(0))
	requireT.Equal("data_9.txt", SlotFilename(9))
	requireT.Equal("data_10.txt", SlotFilename(10))
}
