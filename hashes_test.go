package filedupe

import (
	_ "crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialHashFirstBlockOnly(t *testing.T) {
	dir := t.TempDir()

	// Same first chunk, different tails: the partial hash cannot tell them
	// apart, the full hash must.
	prefix := strings.Repeat("x", chunkSize)
	a := writeFile(t, dir, "a", prefix+"tail-one")
	b := writeFile(t, dir, "b", prefix+"tail-two")

	pa, err := partialHash(SystemDriver, a)
	require.NoError(t, err)
	pb, err := partialHash(SystemDriver, b)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)

	fa, err := fullHash(SystemDriver, a)
	require.NoError(t, err)
	fb, err := fullHash(SystemDriver, b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}

func TestHashesShorterThanChunk(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "tiny")
	b := writeFile(t, dir, "b", "tiny")

	pa, err := partialHash(SystemDriver, a)
	require.NoError(t, err)
	pb, err := partialHash(SystemDriver, b)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)

	fa, err := fullHash(SystemDriver, a)
	require.NoError(t, err)
	fb, err := fullHash(SystemDriver, b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}

func TestHashMissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "vanished")

	_, err := partialHash(SystemDriver, p)
	assert.Error(t, err)
	_, err = fullHash(SystemDriver, p)
	assert.Error(t, err)
}

func TestGroupByHashInodeShortCircuit(t *testing.T) {
	// All members share one (dev, inode): the hash function must never run.
	files := []*File{
		{Path: "a", Dev: 1, Inode: 10, Nlink: 2, Size: 100},
		{Path: "b", Dev: 1, Inode: 10, Nlink: 2, Size: 100},
	}

	groups := groupByHash(nil, files, func(Driver, string) (string, error) {
		t.Fatal("hash invoked for single-inode group")
		return "", nil
	}, quietLog())

	require.Len(t, groups, 1)
	assert.Equal(t, files, groups[0])
}

func TestGroupByHashOneHashPerInode(t *testing.T) {
	files := []*File{
		{Path: "a1", Dev: 1, Inode: 10, Size: 100},
		{Path: "a2", Dev: 1, Inode: 10, Size: 100},
		{Path: "b", Dev: 1, Inode: 20, Size: 100},
		{Path: "c", Dev: 1, Inode: 30, Size: 100},
	}

	hashed := map[string]int{}
	keys := map[string]string{"a1": "h1", "b": "h1", "c": "h2"}

	groups := groupByHash(nil, files, func(_ Driver, p string) (string, error) {
		hashed[p]++
		return keys[p], nil
	}, quietLog())

	// One hash per distinct inode, computed on the partition's first member.
	assert.Equal(t, map[string]int{"a1": 1, "b": 1, "c": 1}, hashed)

	// a1, a2 (by inode identity) and b (by hash) merge; c is a singleton.
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a1", "a2", "b"}, groupPaths(groups)[0])
}

func TestGroupByHashDropsUnreadablePartition(t *testing.T) {
	files := []*File{
		{Path: "a", Dev: 1, Inode: 10, Size: 100},
		{Path: "b", Dev: 1, Inode: 20, Size: 100},
		{Path: "c", Dev: 1, Inode: 30, Size: 100},
	}

	groups := groupByHash(nil, files, func(_ Driver, p string) (string, error) {
		if p == "b" {
			return "", errors.New("gone")
		}
		return "same", nil
	}, quietLog())

	// b's partition is dropped; the remaining members still group.
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "c"}, groupPaths(groups)[0])
}

func TestGroupByHashSingletonResult(t *testing.T) {
	files := []*File{
		{Path: "a", Dev: 1, Inode: 10, Size: 100},
		{Path: "b", Dev: 1, Inode: 20, Size: 100},
	}

	groups := groupByHash(nil, files, func(_ Driver, p string) (string, error) {
		return p, nil // every member hashes differently
	}, quietLog())

	assert.Empty(t, groups)
}

func TestFullHashMatchesRealContent(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("0123456789", 5000) // several chunks
	a := writeFile(t, dir, "a", content)
	b := writeFile(t, dir, "b", content)
	c := writeFile(t, dir, "c", content[:len(content)-1]+"!")

	fa, err := fullHash(SystemDriver, a)
	require.NoError(t, err)
	fb, err := fullHash(SystemDriver, b)
	require.NoError(t, err)
	fc, err := fullHash(SystemDriver, c)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)

	// Content equality, not path or mtime, decides the key.
	stamp := time.Unix(1500000000, 0)
	require.NoError(t, os.Chtimes(b, stamp, stamp))
	fb2, err := fullHash(SystemDriver, b)
	require.NoError(t, err)
	assert.Equal(t, fb, fb2)
}
