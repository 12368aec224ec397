package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"minikv/internal/record"
	"minikv/internal/store"
	minikverrors "minikv/pkg/errors"
	"minikv/pkg/logger"
	"minikv/pkg/options"
)

func testOptions(dir string) options.Options {
	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	return opts
}

func openStore(t *testing.T, opts options.Options) *store.Store {
	t.Helper()
	s, err := store.Open(opts, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenEmptyDirectoryGetAbsent(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	value, ok, err := s.Get("key")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, value)
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	require.NoError(t, s.Set("key1", "value1"))
	require.NoError(t, s.Set("key2", "value2"))

	v1, ok, err := s.Get("key1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value1", v1)

	v2, ok, err := s.Get("key2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value2", v2)
}

func TestRemoveAbsentKeyNotFound(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	err := s.Remove("absent")
	require.Error(t, err)
	require.True(t, minikverrors.Is(err, minikverrors.CodeKeyNotFound))
}

func TestSetRemoveGetAbsentThenRemoveAgainFails(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Remove("k"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	err = s.Remove("k")
	require.Error(t, err)
	require.True(t, minikverrors.Is(err, minikverrors.CodeKeyNotFound))
}

func TestEmptyValueRoundTrips(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	require.NoError(t, s.Set("key", ""))

	value, ok, err := s.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "", value)
}

func TestLongKeyAndValueRoundTrip(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	key := strings.Repeat("k", 1<<20)
	value := strings.Repeat("v", 1<<20)

	require.NoError(t, s.Set(key, value))

	got, ok, err := s.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value, got)
}

func TestOverwriteIncrementsWastedByExactPriorSize(t *testing.T) {
	t.Parallel()

	s := openStore(t, testOptions(t.TempDir()))

	require.NoError(t, s.Set("k", "v1"))
	priorSize := record.NewPut("k", "v1").EncodedSize()

	_, wastedBefore := s.Stats()
	require.Zero(t, wastedBefore)

	require.NoError(t, s.Set("k", "v2-longer-value"))

	_, wastedAfter := s.Stats()
	require.EqualValues(t, priorSize, wastedAfter)
}

func TestReopenPreservesState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s1, err := store.Open(testOptions(dir), logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, s1.Set("a", "1"))
	require.NoError(t, s1.Set("b", "2"))
	require.NoError(t, s1.Set("a", "1'"))
	require.NoError(t, s1.Remove("b"))
	require.NoError(t, s1.Close())

	s2, err := store.Open(testOptions(dir), logger.NewNop())
	require.NoError(t, err)
	defer s2.Close()

	a, ok, err := s2.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1'", a)

	_, ok, err = s2.Get("b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompactionTriggeredByThresholdPreservesLatestValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := testOptions(dir)
	opts.CompactionThreshold = 1024

	s := openStore(t, opts)

	const n = 200
	var last string
	for i := 0; i < n; i++ {
		last = strings.Repeat("v", 50) + string(rune('a'+i%26))
		require.NoError(t, s.Set("k", last))
	}

	value, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, last, value)

	_, wasted := s.Stats()
	require.Less(t, wasted, opts.CompactionThreshold, "compaction should have reset the wasted counter at least once")

	info, err := os.Stat(filepath.Join(dir, opts.DataFileName))
	require.NoError(t, err)
	require.LessOrEqual(t, info.Size(), int64(n)*record.NewPut("k", last).EncodedSize())
}

func TestExplicitCompactPreservesSemanticsAndShrinksFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := testOptions(dir)
	opts.CompactionThreshold = 0 // disable automatic compaction

	s := openStore(t, opts)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("a", "1-updated"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Remove("b"))

	sizeBefore, err := os.Stat(filepath.Join(dir, opts.DataFileName))
	require.NoError(t, err)

	require.NoError(t, s.Compact())

	a, ok, err := s.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1-updated", a)

	_, ok, err = s.Get("b")
	require.NoError(t, err)
	require.False(t, ok)

	sizeAfter, err := os.Stat(filepath.Join(dir, opts.DataFileName))
	require.NoError(t, err)
	require.LessOrEqual(t, sizeAfter.Size(), sizeBefore.Size())

	wantSize := record.NewPut("a", "1-updated").EncodedSize()
	require.EqualValues(t, wantSize, sizeAfter.Size())

	_, wasted := s.Stats()
	require.Zero(t, wasted)
}

func TestCompactionIsASiblingOfTheDataFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := testOptions(dir)

	s := openStore(t, opts)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Compact())

	_, err := os.Stat(filepath.Join(dir, opts.CompactFileName))
	require.True(t, os.IsNotExist(err), "compaction file must not survive a successful compact")

	_, err = os.Stat(filepath.Join(dir, opts.DataFileName))
	require.NoError(t, err)
}

func TestOpenDiscardsTruncatedTail(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := testOptions(dir)

	s := openStore(t, opts)
	require.NoError(t, s.Set("k1", "v1"))
	require.NoError(t, s.Set("k2", "v2"))
	require.NoError(t, s.Close())

	dataPath := filepath.Join(dir, opts.DataFileName)
	info, err := os.Stat(dataPath)
	require.NoError(t, err)

	// Simulate a crash mid-append: truncate to cut the last record's tail.
	require.NoError(t, os.Truncate(dataPath, info.Size()-3))

	s2, err := store.Open(opts, logger.NewNop())
	require.NoError(t, err)
	defer s2.Close()

	v1, ok, err := s2.Get("k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", v1)

	_, ok, err = s2.Get("k2")
	require.NoError(t, err)
	require.False(t, ok, "the truncated record must not appear in the recovered index")

	// The store must remain writable after a truncated recovery.
	require.NoError(t, s2.Set("k3", "v3"))
	v3, ok, err := s2.Get("k3")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v3", v3)
}

func TestOpenRemovesStaleCompactionFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := testOptions(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, opts.CompactFileName), []byte("stale"), 0o644))

	s := openStore(t, opts)
	_, ok, err := s.Get("anything")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = os.Stat(filepath.Join(dir, opts.CompactFileName))
	require.True(t, os.IsNotExist(err))
}
