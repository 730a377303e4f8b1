package filedupe

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotRegular marks paths naming directories, symlinks, devices or
	// other non-regular entries.
	ErrNotRegular = fmt.Errorf("not a regular file")

	// ErrEmptyFile marks zero-length files, which carry no content to
	// deduplicate.
	ErrEmptyFile = fmt.Errorf("empty file")
)

// FileID identifies the physical storage backing a file. Paths sharing a
// FileID are hardlinks to the same inode and therefore byte-identical
// without any content inspection.
type FileID struct {
	Dev   uint64
	Inode uint64
}

func (id FileID) String() string {
	return fmt.Sprintf("%d:%d", id.Dev, id.Inode)
}

// File is an immutable snapshot of one path's filesystem identity, taken
// from a single lstat call. The path is carried verbatim as handed in; no
// normalization or encoding assumptions are applied.
type File struct {
	Path  string
	Dev   uint64
	Inode uint64
	Nlink uint64
	Size  int64
}

// ID returns the (device, inode) identity of the file.
func (f *File) ID() FileID {
	return FileID{Dev: f.Dev, Inode: f.Inode}
}

func (f *File) String() string {
	return f.Path
}

// Resolve stats path and returns its File snapshot. Non-regular entries
// resolve to ErrNotRegular and zero-length files to ErrEmptyFile so callers
// can tell skippable paths from stat failures.
func Resolve(d Driver, path string) (*File, error) {
	fi, err := d.Lstat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	if !fi.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrNotRegular, "%s", path)
	}

	if fi.Size() == 0 {
		return nil, errors.Wrapf(ErrEmptyFile, "%s", path)
	}

	dev, ino, nlink, err := fileIdentity(path, fi)
	if err != nil {
		return nil, errors.Wrapf(err, "identity of %s", path)
	}

	return &File{
		Path:  path,
		Dev:   dev,
		Inode: ino,
		Nlink: nlink,
		Size:  fi.Size(),
	}, nil
}
