// Package store implements minikv's log engine (spec.md §4.3): the data
// file, the position-tracking reader and writer, the in-memory key→offset
// index, and the wasted-bytes counter that triggers compaction.
package store

import (
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"minikv/internal/posio"
	"minikv/internal/record"
	minikverrors "minikv/pkg/errors"
	"minikv/pkg/filesys"
	"minikv/pkg/options"
)

// Open prepares dir as a minikv data directory and returns a Store ready
// for use. It creates dir if absent, discards a stale compaction file left
// behind by a crash mid-compact, then recovers the index by replaying the
// data file.
//
// If recovery finds the data file truncated mid-record (a crash during an
// append), Open discards the incomplete tail by truncating the file down
// to the last fully-written record before opening the writer. This keeps
// the writer's Pos — and so every future record offset — exactly aligned
// with the file's actual length; without it, append-mode writes would
// land after the garbage tail instead of at the offset recovery agreed on.
func Open(opts options.Options, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if err := filesys.EnsureDir(opts.DataDir, 0o755); err != nil {
		return nil, minikverrors.NewInvalidDataPath(opts.DataDir).WithDetail("cause", err.Error())
	}

	dataPath := filepath.Join(opts.DataDir, opts.DataFileName)
	compactPath := filepath.Join(opts.DataDir, opts.CompactFileName)

	if err := filesys.RemoveIfExists(compactPath); err != nil {
		log.Warnw("could not remove stale compaction file", "path", compactPath, "error", err)
	}

	if err := ensureFile(dataPath); err != nil {
		return nil, minikverrors.NewIO(err, "could not create data file")
	}

	s := &Store{
		dir:         opts.DataDir,
		dataPath:    dataPath,
		compactPath: compactPath,
		index:       make(map[string]int64),
		opts:        opts,
		log:         log,
	}

	scanReader, err := posio.NewReader(dataPath)
	if err != nil {
		return nil, minikverrors.NewIO(err, "could not open data file for recovery scan")
	}
	s.reader = scanReader

	endOffset, err := s.loadIndex()
	if err != nil {
		scanReader.Close()
		return nil, err
	}
	if err := scanReader.Close(); err != nil {
		return nil, minikverrors.NewIO(err, "could not close recovery scan reader")
	}

	if info, err := os.Stat(dataPath); err == nil && info.Size() > endOffset {
		log.Warnw("discarding truncated tail from data file", "offset", endOffset, "fileSize", info.Size())
		if err := os.Truncate(dataPath, endOffset); err != nil {
			return nil, minikverrors.NewIO(err, "could not truncate incomplete data file tail")
		}
	}

	writer, err := posio.NewWriter(dataPath)
	if err != nil {
		return nil, minikverrors.NewIO(err, "could not open data file for append")
	}
	s.writer = writer

	reader, err := posio.NewReader(dataPath)
	if err != nil {
		writer.Close()
		return nil, minikverrors.NewIO(err, "could not open data file for reads")
	}
	s.reader = reader

	log.Infow("store opened", "dataPath", dataPath, "keys", len(s.index), "wasted", s.wasted)
	return s, nil
}

func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Get returns the current value for key, or ok == false if key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	offset, ok := s.index[key]
	if !ok {
		return "", false, nil
	}

	rec, _, err := s.readAt(offset)
	if err != nil {
		return "", false, minikverrors.NewIO(err, "could not read indexed record").WithKey(key).WithOffset(offset)
	}

	return rec.Value, true, nil
}

// Set writes a PUT record for key/value and updates the index to point at
// it. If key already had a value, the superseded record's size is charged
// to the wasted-bytes counter, and compaction runs synchronously once that
// counter reaches the configured threshold.
func (s *Store) Set(key, value string) error {
	rec := record.NewPut(key, value)

	if prev, ok := s.index[key]; ok {
		_, prevSize, err := s.readAt(prev)
		if err != nil {
			return minikverrors.NewIO(err, "could not read superseded record").WithKey(key).WithOffset(prev)
		}
		s.wasted += prevSize
	}

	offset := s.writer.Pos
	if _, err := s.writer.Write(rec.Encode()); err != nil {
		return minikverrors.NewIO(err, "could not append record")
	}
	if err := s.writer.Flush(); err != nil {
		return minikverrors.NewIO(err, "could not flush record")
	}

	s.index[key] = offset

	if s.opts.CompactionThreshold > 0 && s.wasted >= s.opts.CompactionThreshold {
		return s.Compact()
	}
	return nil
}

// Remove appends a tombstone for key and drops it from the index. It
// returns a KeyNotFound error if key is absent. Unlike Set, Remove does not
// add to the wasted-bytes counter — that behavior is preserved deliberately
// (spec.md §9 note 3), so removing keys alone never triggers compaction.
func (s *Store) Remove(key string) error {
	if _, ok := s.index[key]; !ok {
		return minikverrors.NewKeyNotFound(key)
	}

	rec := record.NewDel(key)
	if _, err := s.writer.Write(rec.Encode()); err != nil {
		return minikverrors.NewIO(err, "could not append tombstone")
	}
	if err := s.writer.Flush(); err != nil {
		return minikverrors.NewIO(err, "could not flush tombstone")
	}

	delete(s.index, key)
	return nil
}

// Stats reports the current number of live keys and the wasted-bytes
// counter.
func (s *Store) Stats() (keys int, wasted int64) {
	return len(s.index), s.wasted
}

// Close flushes and releases the writer and reader file handles.
func (s *Store) Close() error {
	var err error
	if cerr := s.writer.Close(); cerr != nil {
		err = multierr.Append(err, cerr)
	}
	if cerr := s.reader.Close(); cerr != nil {
		err = multierr.Append(err, cerr)
	}
	return err
}
