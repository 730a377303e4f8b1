package filedupe

import (
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// chunkSize bounds every read issued by the hash providers, so file content
// is streamed rather than loaded whole.
const chunkSize = 16 * 1024

// A hashFunc produces a content key for the file at path. Equal keys from
// partialHash mean probably-equal content; equal keys from fullHash mean
// byte-identical content.
type hashFunc func(d Driver, path string) (string, error)

// partialHash hashes only the first chunk of the file with a fast digest.
// It is a pre-filter: collisions are tolerated because fullHash always has
// the last word.
func partialHash(d Driver, path string) (string, error) {
	f, err := d.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.CopyN(h, f, chunkSize); err != nil && err != io.EOF {
		return "", errors.Wrapf(err, "read %s", path)
	}

	return strconv.FormatUint(h.Sum64(), 16), nil
}

// fullHash streams the entire file through the canonical digest algorithm.
// Equality of full hashes is the terminal proof of identical content.
func fullHash(d Driver, path string) (string, error) {
	f, err := d.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	digester := digest.Canonical.Digester()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(digester.Hash(), f, buf); err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}

	return digester.Digest().String(), nil
}

// groupByHash refines one candidate group by content key, short-circuiting
// on inode identity. Members are first partitioned by FileID: a partition's
// members are hardlinks of each other, so only its first member is ever
// hashed. When a single partition covers the whole group, no hashing
// happens at all and the group is confirmed as-is.
//
// A partition whose representative cannot be read is dropped with a
// diagnostic; the rest of the group proceeds.
func groupByHash(d Driver, files []*File, hash hashFunc, log *logrus.Entry) [][]*File {
	byID := groupBy(files, (*File).ID)
	if len(byID) <= 1 {
		if len(files) > 1 {
			return [][]*File{files}
		}
		return nil
	}

	index := make(map[string]int, len(byID))

	var buckets [][]*File
	for _, partition := range byID {
		key, err := hash(d, partition[0].Path)
		if err != nil {
			log.WithError(err).Warnf("could not hash %s, skipping", partition[0].Path)
			continue
		}

		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], partition...)
	}

	return retainMulti(buckets)
}
