// Package pathstream reads separator-delimited path lists from a raw byte
// stream, the form produced by find -print or find -print0.
package pathstream

import (
	"bufio"
	"bytes"
	"io"
)

// maxPathLen caps a single record. Anything longer than this is not a
// plausible path and indicates a wrong separator.
const maxPathLen = 64 * 1024

// Split reads paths from r, delimited by sep, preserving each record's
// bytes verbatim. Empty records are dropped; a trailing record without a
// final separator is kept.
func Split(r io.Reader, sep byte) ([]string, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxPathLen)
	s.Split(splitOn(sep))

	var paths []string
	for s.Scan() {
		if tok := s.Text(); tok != "" {
			paths = append(paths, tok)
		}
	}
	return paths, s.Err()
}

func splitOn(sep byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, sep); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
