package store

import (
	"os"

	"github.com/natefinch/atomic"

	"minikv/internal/posio"
	minikverrors "minikv/pkg/errors"
)

// Compact rewrites the data file to contain only the current live PUT
// records, reclaiming the space held by superseded values and tombstones
// (spec.md §4.3). It builds the replacement at compactPath, a sibling of
// the data file, then swaps it into place with atomic.WriteFile (itself a
// temp-file-then-rename over the destination) — a crash at any point
// before the swap leaves the original data file untouched.
//
// This is the corrected version of the original engine's compaction: that
// implementation only ever considered tombstone records for inclusion, and
// checked tombstones against an index that never contains them, so the
// condition could never be true and compaction silently produced an empty
// file. It also built the replacement two directories above the data
// directory instead of beside it. Neither behavior is reproduced here —
// compaction writes exactly the records the index currently points at,
// into a file next to the one it replaces.
func (s *Store) Compact() error {
	compactWriter, err := posio.NewWriter(s.compactPath)
	if err != nil {
		return minikverrors.NewIO(err, "could not open compaction file")
	}

	newIndex := make(map[string]int64, len(s.index))

	for key, offset := range s.index {
		rec, _, err := s.readAt(offset)
		if err != nil {
			compactWriter.Close()
			os.Remove(s.compactPath)
			return minikverrors.NewIO(err, "could not read live record during compaction").WithKey(key).WithOffset(offset)
		}

		newOffset := compactWriter.Pos
		if _, err := compactWriter.Write(rec.Encode()); err != nil {
			compactWriter.Close()
			os.Remove(s.compactPath)
			return minikverrors.NewIO(err, "could not write compacted record")
		}
		newIndex[key] = newOffset
	}

	if err := compactWriter.Close(); err != nil {
		os.Remove(s.compactPath)
		return minikverrors.NewIO(err, "could not close compaction file")
	}

	if err := s.writer.Close(); err != nil {
		return minikverrors.NewIO(err, "could not close data writer before compaction swap")
	}
	if err := s.reader.Close(); err != nil {
		return minikverrors.NewIO(err, "could not close data reader before compaction swap")
	}

	compactFile, err := os.Open(s.compactPath)
	if err != nil {
		return minikverrors.NewIO(err, "could not reopen compaction file for swap")
	}
	swapErr := atomic.WriteFile(s.dataPath, compactFile)
	compactFile.Close()
	if swapErr != nil {
		return minikverrors.NewIO(swapErr, "could not swap compacted file into place")
	}
	os.Remove(s.compactPath)

	writer, err := posio.NewWriter(s.dataPath)
	if err != nil {
		return minikverrors.NewIO(err, "could not reopen data file for append after compaction")
	}
	reader, err := posio.NewReader(s.dataPath)
	if err != nil {
		writer.Close()
		return minikverrors.NewIO(err, "could not reopen data file for reads after compaction")
	}

	s.writer = writer
	s.reader = reader
	s.index = newIndex
	s.wasted = 0

	s.log.Infow("compaction complete", "keys", len(s.index), "fileSize", s.writer.Pos)
	return nil
}
