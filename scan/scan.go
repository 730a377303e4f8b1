// Package scan expands positional path arguments into the flat path list
// the deduplication pipeline consumes, walking directories for regular
// files.
package scan

import (
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// Paths returns the regular files reachable from each root. File roots pass
// through as-is. Directory roots are walked without following symlinks and
// their results sorted, so repeated runs over the same tree see the same
// order. An unreadable root is a diagnostic, not a failure.
func Paths(roots []string, log *logrus.Entry) []string {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	var paths []string
	for _, root := range roots {
		fi, err := os.Lstat(root)
		if err != nil {
			log.WithError(err).Warnf("could not stat %s, skipping", root)
			continue
		}
		if !fi.IsDir() {
			paths = append(paths, root)
			continue
		}
		paths = append(paths, walkDir(root, log)...)
	}
	return paths
}

func walkDir(root string, log *logrus.Entry) []string {
	var (
		mu    sync.Mutex
		found []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Warnf("could not walk %s, skipping", path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		mu.Lock()
		found = append(found, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		log.WithError(err).Warnf("could not walk %s, skipping", root)
	}

	sort.Strings(found)
	return found
}
