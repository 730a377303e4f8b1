package filedupe

import (
	"io"
	"os"
)

// SystemDriver is exported as a global since it's just a wrapper around
// the os package functions, so it has no internal state.
var SystemDriver Driver = &systemDriver{}

// Driver provides the system-level filesystem operations the pipeline and
// consolidator perform. All path access goes through a Driver rather than
// the os package directly, which gives a single seam for controlling
// resource access and for substituting failing operations in tests.
type Driver interface {
	Open(path string) (io.ReadCloser, error)
	Lstat(path string) (os.FileInfo, error)

	Rename(oldpath, newpath string) error
	Link(oldname, newname string) error
	Remove(path string) error
}

type systemDriver struct{}

var _ Driver = &systemDriver{}

func (*systemDriver) Open(p string) (io.ReadCloser, error) {
	return os.Open(p)
}

func (*systemDriver) Lstat(p string) (os.FileInfo, error) {
	return os.Lstat(p)
}

func (*systemDriver) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (*systemDriver) Link(oldname, newname string) error {
	return os.Link(oldname, newname)
}

// Remove is used to unlink files. This follows the golang os package api
// which combines unlink and directory removal into a higher level Remove
// function; only files are ever passed here.
func (*systemDriver) Remove(path string) error {
	return os.Remove(path)
}
