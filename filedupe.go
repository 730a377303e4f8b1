// Package filedupe finds groups of byte-identical files among a set of
// paths and optionally consolidates each group onto a single inode via
// hardlinking.
//
// Candidates are narrowed progressively: files are grouped by size, then by
// a cheap hash of their first block, then by a full-content digest. Only
// the final stage proves identity; the earlier stages exist to keep
// whole-file hashing off files that cannot possibly match. Files already
// hardlinked together are recognized by their (device, inode) identity and
// never hashed redundantly.
package filedupe

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Pipeline turns path lists into confirmed-duplicate groups. Immutable
// after construction; every run is an independent batch with no state
// carried between calls.
type Pipeline struct {
	driver Driver
	log    *logrus.Entry
}

// NewPipeline returns a Pipeline using d for all filesystem access. A nil
// driver selects the SystemDriver; a nil log selects the standard logger.
func NewPipeline(d Driver, log *logrus.Entry) *Pipeline {
	if d == nil {
		d = SystemDriver
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Pipeline{driver: d, log: log}
}

// A stage refines one candidate group into sub-groups whose members are
// still possibly identical.
type stage func([]*File) [][]*File

// refine applies each stage to every group in turn, dropping sub-groups
// that no longer hold at least two members. Adding or removing a stage
// changes the filter sequence without touching any control flow.
func refine(groups [][]*File, stages ...stage) [][]*File {
	for _, st := range stages {
		var next [][]*File
		for _, g := range groups {
			next = append(next, retainMulti(st(g))...)
		}
		groups = next
	}
	return groups
}

// Deduplicate resolves paths and returns the groups proven byte-identical.
// Groups come back in the order their size key first appears in the input
// and members keep their input order.
func (p *Pipeline) Deduplicate(paths []string) [][]*File {
	files := p.resolve(paths)
	p.log.Debugf("resolved %d of %d paths", len(files), len(paths))

	groups := refine([][]*File{files},
		func(g []*File) [][]*File {
			return groupBy(g, func(f *File) int64 { return f.Size })
		},
		func(g []*File) [][]*File {
			return groupByHash(p.driver, g, partialHash, p.log)
		},
		func(g []*File) [][]*File {
			return groupByHash(p.driver, g, fullHash, p.log)
		},
	)

	p.log.Debugf("confirmed %d duplicate groups", len(groups))
	return groups
}

// resolve snapshots every readable regular file among paths. A failed stat
// is a per-path diagnostic, never fatal for the batch; non-regular and
// empty paths are skipped quietly.
func (p *Pipeline) resolve(paths []string) []*File {
	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		f, err := Resolve(p.driver, path)
		switch {
		case err == nil:
			files = append(files, f)
		case errors.Is(err, ErrNotRegular) || errors.Is(err, ErrEmptyFile):
			p.log.Debugf("skipping %s: %v", path, err)
		default:
			p.log.Warnf("could not stat %s, skipping: %v", path, err)
		}
	}
	return files
}
