package store

import (
	"go.uber.org/zap"

	"minikv/internal/posio"
	"minikv/pkg/options"
)

// Store is minikv's log-structured storage engine (spec.md §4.3). It owns
// the data file, a position-tracking writer for append and reader for
// seek-then-read, the in-memory key→offset index, and the running
// wasted-bytes counter that drives compaction.
//
// Store is not safe for concurrent use: spec.md's Non-goals exclude
// concurrent mutators within one process, so no internal locking is
// attempted. Callers that need concurrency must serialize access
// themselves.
type Store struct {
	dir         string
	dataPath    string
	compactPath string

	reader *posio.Reader
	writer *posio.Writer

	index  map[string]int64
	wasted int64

	opts options.Options
	log  *zap.SugaredLogger
}

// Config groups the parameters needed to open a Store.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
