package dirfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DirFS uses a directory on the OS filesystem as the backing filesystem.
type DirFS struct {
	dir string
}

// Mount prepares the directory backing the filesystem, creating it if it does
// not exist yet.
func Mount(dir string) (*DirFS, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.WithStack(err)
	}
	return &DirFS{
		dir: dir,
	}, nil
}

// ReadFile reads the contents of the named file.
func (df *DirFS) ReadFile(name string) ([]byte, error) {
	path, err := df.path(name)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// WriteFile replaces the contents of the named file.
func (df *DirFS) WriteFile(name string, data []byte) error {
	path, err := df.path(name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Sync syncs the backing directory.
func (df *DirFS) Sync() error {
	d, err := os.Open(df.dir)
	if err != nil {
		return errors.WithStack(err)
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// The namespace is flat, names addressing outside the directory are rejected.
func (df *DirFS) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(df.dir, name), nil
}
