package filedupe

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// quietLog returns a logrus entry whose output is discarded, keeping test
// output readable while diagnostics still have somewhere to go.
func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// writeFile creates a file under dir with the given content and returns its
// path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// resolveAll turns paths into File snapshots, failing the test on any error.
func resolveAll(t *testing.T, paths ...string) []*File {
	t.Helper()
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := Resolve(SystemDriver, p)
		require.NoError(t, err)
		files = append(files, f)
	}
	return files
}

// groupPaths projects groups of Files onto their paths for assertions.
func groupPaths(groups [][]*File) [][]string {
	var out [][]string
	for _, g := range groups {
		paths := make([]string, 0, len(g))
		for _, f := range g {
			paths = append(paths, f.Path)
		}
		out = append(out, paths)
	}
	return out
}
