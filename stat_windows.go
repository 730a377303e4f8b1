//go:build windows

package filedupe

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// fileIdentity extracts the volume serial number, file index and link count
// for path. Windows keeps these behind a file handle rather than in the
// stat result, so the file is opened briefly without access rights.
func fileIdentity(path string, _ os.FileInfo) (dev, ino, nlink uint64, err error) {
	pathp, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "convert path to UTF16")
	}

	h, err := syscall.CreateFile(pathp, 0, 0, nil, syscall.OPEN_EXISTING, syscall.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "open file")
	}
	defer syscall.CloseHandle(h)

	var info syscall.ByHandleFileInformation
	if err := syscall.GetFileInformationByHandle(h, &info); err != nil {
		return 0, 0, 0, errors.Wrap(err, "get file information")
	}

	dev = uint64(info.VolumeSerialNumber)
	ino = uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow)
	return dev, ino, uint64(info.NumberOfLinks), nil
}
