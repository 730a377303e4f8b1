//go:build !windows

package filedupe

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// fileIdentity extracts the device, inode and link count backing fi. The
// path argument is unused on unix; the identity is already present in the
// stat result.
func fileIdentity(_ string, fi os.FileInfo) (dev, ino, nlink uint64, err error) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, 0, 0, errors.Errorf("unable to resolve syscall.Stat_t from (os.FileInfo).Sys(): %#v", fi)
	}

	return uint64(st.Dev), uint64(st.Ino), uint64(st.Nlink), nil //nolint: unconvert
}
