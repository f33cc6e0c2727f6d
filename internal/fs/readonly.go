// Package fs provides billy.Filesystem views used by the packager.
package fs

import (
	"errors"
	"os"

	billy "github.com/go-git/go-billy/v5"
)

// ErrReadOnly is returned by every mutating call on a read-only view.
var ErrReadOnly = errors.New("read-only filesystem")

// readOnlyFS passes reads through to the wrapped filesystem and rejects writes.
type readOnlyFS struct {
	billy.Filesystem
}

// ReadOnly wraps base so that the source tree cannot be modified through it.
func ReadOnly(base billy.Filesystem) billy.Filesystem {
	if ro, ok := base.(*readOnlyFS); ok {
		return ro
	}
	return &readOnlyFS{Filesystem: base}
}

// --- billy.Basic ---

func (fs *readOnlyFS) Create(filename string) (billy.File, error) {
	return nil, &os.PathError{Op: "create", Path: filename, Err: ErrReadOnly}
}

func (fs *readOnlyFS) Open(filename string) (billy.File, error) {
	return fs.OpenFile(filename, os.O_RDONLY, 0)
}

func (fs *readOnlyFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, &os.PathError{Op: "open", Path: filename, Err: ErrReadOnly}
	}
	return fs.Filesystem.OpenFile(filename, flag, perm)
}

func (fs *readOnlyFS) Rename(oldpath, newpath string) error {
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: ErrReadOnly}
}

func (fs *readOnlyFS) Remove(filename string) error {
	return &os.PathError{Op: "remove", Path: filename, Err: ErrReadOnly}
}

// --- billy.TempFile ---

func (fs *readOnlyFS) TempFile(dir, prefix string) (billy.File, error) {
	return nil, &os.PathError{Op: "tempfile", Path: dir, Err: ErrReadOnly}
}

// --- billy.Dir ---

func (fs *readOnlyFS) MkdirAll(filename string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: filename, Err: ErrReadOnly}
}

// --- billy.Symlink ---

func (fs *readOnlyFS) Symlink(target, link string) error {
	return &os.LinkError{Op: "symlink", Old: target, New: link, Err: ErrReadOnly}
}

// --- billy.Chroot ---

func (fs *readOnlyFS) Chroot(path string) (billy.Filesystem, error) {
	sub, err := fs.Filesystem.Chroot(path)
	if err != nil {
		return nil, err
	}
	return ReadOnly(sub), nil
}

// --- billy.Capable ---

func (fs *readOnlyFS) Capabilities() billy.Capability {
	return billy.Capabilities(fs.Filesystem) &^ (billy.WriteCapability | billy.TruncateCapability)
}

// Compile-time interface checks.
var (
	_ billy.Filesystem = (*readOnlyFS)(nil)
	_ billy.Capable    = (*readOnlyFS)(nil)
)
