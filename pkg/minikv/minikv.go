// Package minikv provides a small, embeddable key/value store modeled on
// Bitcask: an append-only log on disk backed by an in-memory hash index,
// giving O(1) reads and writes at the cost of keeping every key resident
// in memory. It is designed for single-process use — spec.md's Non-goals
// explicitly exclude concurrent access, networked access, and range scans.
package minikv

import (
	"go.uber.org/zap"

	"minikv/internal/engine"
	"minikv/pkg/logger"
	"minikv/pkg/options"
)

// Instance is the primary entry point for interacting with minikv. It
// encapsulates the engine responsible for reading and writing records and
// the options this instance was opened with.
type Instance struct {
	engine *engine.Engine
	opts   *options.Options
}

// Open creates or recovers a minikv store rooted at dir, applying any
// functional options over the package defaults, and using a default
// production logger tagged with the "minikv" service name.
func Open(dir string, opts ...options.OptionFunc) (*Instance, error) {
	return OpenWithLogger(logger.New("minikv"), dir, opts...)
}

// OpenWithLogger is Open with an explicit logger, for callers embedding
// minikv inside a larger service that already owns one.
func OpenWithLogger(log *zap.SugaredLogger, dir string, opts ...options.OptionFunc) (*Instance, error) {
	resolved := options.NewDefaultOptions()
	resolved.DataDir = dir
	for _, opt := range opts {
		opt(&resolved)
	}

	eng, err := engine.New(&engine.Config{Options: &resolved, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, opts: &resolved}, nil
}

// Get retrieves the value stored under key. ok is false if the key is not
// present; it is not an error to look up a missing key.
func (i *Instance) Get(key string) (value string, ok bool, err error) {
	return i.engine.Get(key)
}

// Set stores value under key, superseding any previous value.
func (i *Instance) Set(key, value string) error {
	return i.engine.Set(key, value)
}

// Remove deletes key from the store. It returns an error carrying
// errors.CodeKeyNotFound if key is not present.
func (i *Instance) Remove(key string) error {
	return i.engine.Remove(key)
}

// Stats reports the number of live keys and the current wasted-bytes
// counter that drives automatic compaction.
func (i *Instance) Stats() (keys int, wasted int64) {
	return i.engine.Stats()
}

// Close releases the instance's underlying file handles. After Close, the
// Instance must not be used again.
func (i *Instance) Close() error {
	return i.engine.Close()
}
