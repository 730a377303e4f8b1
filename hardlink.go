package filedupe

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// backupSuffix names the temporary rename target used while a duplicate is
// being relinked. An interrupted run can leave such a file behind; it holds
// the duplicate's original content and is safe to inspect or remove once
// the link at the original path is verified.
const backupSuffix = ".bak"

// Linker consolidates confirmed-duplicate groups by replacing members with
// hardlinks to a single survivor per device.
type Linker struct {
	driver Driver
	dryRun bool
	log    *logrus.Entry
}

// NewLinker returns a Linker operating through d. With dryRun set, LinkGroup
// reports reclaimable bytes without mutating anything.
func NewLinker(d Driver, dryRun bool, log *logrus.Entry) *Linker {
	if d == nil {
		d = SystemDriver
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Linker{driver: d, dryRun: dryRun, log: log}
}

// LinkGroup consolidates one confirmed-duplicate group and returns the
// bytes reclaimed. Hardlinks cannot cross devices, so members are first
// partitioned by device and each partition is consolidated independently.
func (l *Linker) LinkGroup(files []*File) int64 {
	var total int64
	for _, sameDev := range retainMulti(groupBy(files, func(f *File) uint64 { return f.Dev })) {
		total += l.linkWithinDevice(sameDev)
	}
	return total
}

// linkWithinDevice consolidates members known to share a device. The
// survivor is the member with the highest existing link count, ties broken
// by input order; the most-linked file is likeliest to already be the
// canonical target of links outside this batch.
func (l *Linker) linkWithinDevice(files []*File) int64 {
	byInode := groupBy(files, func(f *File) uint64 { return f.Inode })
	if len(byInode) <= 1 {
		// Every path already shares one inode. Nothing to reclaim.
		return 0
	}

	survivor := files[0]
	for _, f := range files[1:] {
		if f.Nlink > survivor.Nlink {
			survivor = f
		}
	}

	var total int64
	for _, partition := range byInode {
		if partition[0].Inode == survivor.Inode {
			continue
		}
		for _, f := range partition {
			n, err := l.replace(survivor, f)
			if err != nil {
				l.log.WithError(err).Warnf("could not hardlink %s to %s, skipping", survivor.Path, f.Path)
				continue
			}
			total += n
		}
	}
	return total
}

// replace makes target's path a hardlink to survivor and returns the bytes
// reclaimed. The target is renamed aside before linking so its content
// stays reachable at every step: a failed link leaves the backup in place
// rather than losing the last copy.
func (l *Linker) replace(survivor, target *File) (int64, error) {
	l.log.Infof("linking %s to %s", survivor.Path, target.Path)
	if l.dryRun {
		return target.Size, nil
	}

	backup := target.Path + backupSuffix
	if err := l.driver.Rename(target.Path, backup); err != nil {
		return 0, errors.Wrap(err, "rename")
	}
	if err := l.driver.Link(survivor.Path, target.Path); err != nil {
		return 0, errors.Wrap(err, "link")
	}
	if err := l.driver.Remove(backup); err != nil {
		return 0, errors.Wrap(err, "unlink backup")
	}

	return target.Size, nil
}
