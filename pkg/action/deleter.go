package action

import (
	"os"

	"golang.org/x/sys/unix"
)

// Deleter abstracts the filesystem calls behind the delete action.
// Tests substitute FakeDeleter to observe deletions without touching the disk.
type Deleter interface {
	Remove(path string) error
	RemoveDir(path string) error
}

// OSDeleter implements Deleter with unlink(2) and rmdir(2).
// RemoveDir never removes a directory that still has entries.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error {
	if err := unix.Unlink(path); err != nil {
		return &os.PathError{Op: "unlink", Path: path, Err: err}
	}
	return nil
}

func (OSDeleter) RemoveDir(path string) error {
	if err := unix.Rmdir(path); err != nil {
		return &os.PathError{Op: "rmdir", Path: path, Err: err}
	}
	return nil
}

// FakeDeleter implements Deleter for testing.
// Records all delete calls without performing actual deletions; Errs maps
// a path to the error its deletion should return.
type FakeDeleter struct {
	Calls []string
	Errs  map[string]error
}

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	return f.Errs[path]
}

func (f *FakeDeleter) RemoveDir(path string) error {
	f.Calls = append(f.Calls, "rmdir:"+path)
	return f.Errs[path]
}
