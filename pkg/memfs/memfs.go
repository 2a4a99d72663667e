package memfs

import (
	"io/fs"

	"github.com/pkg/errors"
)

// MemFS simulates the backing filesystem in memory.
type MemFS struct {
	files     map[string][]byte
	readErrs  map[string]error
	writeErrs map[string]error
}

// New returns new memfs.
func New() *MemFS {
	return &MemFS{
		files:     map[string][]byte{},
		readErrs:  map[string]error{},
		writeErrs: map[string]error{},
	}
}

// ReadFile reads the contents of the named file.
func (mf *MemFS) ReadFile(name string) ([]byte, error) {
	if err := mf.readErrs[name]; err != nil {
		return nil, errors.WithStack(err)
	}

	data, exists := mf.files[name]
	if !exists {
		return nil, errors.Wrapf(fs.ErrNotExist, "open %s", name)
	}
	return append([]byte{}, data...), nil
}

// WriteFile replaces the contents of the named file.
func (mf *MemFS) WriteFile(name string, data []byte) error {
	if err := mf.writeErrs[name]; err != nil {
		return errors.WithStack(err)
	}

	mf.files[name] = append([]byte{}, data...)
	return nil
}

// Sync is a no-op, memfs writes are immediately durable.
func (mf *MemFS) Sync() error {
	return nil
}

// FailReads makes subsequent reads of the named file fail with err.
// A nil err restores normal reads.
func (mf *MemFS) FailReads(name string, err error) {
	if err == nil {
		delete(mf.readErrs, name)
		return
	}
	mf.readErrs[name] = err
}

// FailWrites makes subsequent writes of the named file fail with err.
// A nil err restores normal writes.
func (mf *MemFS) FailWrites(name string, err error) {
	if err == nil {
		delete(mf.writeErrs, name)
		return
	}
	mf.writeErrs[name] = err
}
