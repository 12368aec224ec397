// Package engine provides the façade in front of minikv's log engine.
//
// The façade exists so callers depend on a small capability surface —
// Get, Set, Remove — rather than the concrete store.Store, leaving room
// for an alternative engine implementation later without touching
// pkg/minikv or the CLI (spec.md §4.4).
package engine

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"minikv/internal/store"
	"minikv/pkg/options"
)

// ErrEngineClosed is returned when attempting to perform operations on a
// closed engine.
var ErrEngineClosed = errors.New("operation failed: cannot access closed engine")

// Capability is the surface pkg/minikv and the CLI program against,
// rather than the concrete Engine type.
type Capability interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Engine coordinates the log engine and guards it against use after Close.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool
	store   *store.Store
}

// Config holds the parameters needed to initialize a new Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

var _ Capability = (*Engine)(nil)

// New opens the log engine and returns a ready-to-use Engine.
func New(config *Config) (*Engine, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s, err := store.Open(*config.Options, log)
	if err != nil {
		return nil, err
	}

	return &Engine{options: config.Options, log: log, store: s}, nil
}

// Get returns the current value for key.
func (e *Engine) Get(key string) (string, bool, error) {
	if e.closed.Load() {
		e.log.Warnw("get attempted on closed engine", "key", key)
		return "", false, ErrEngineClosed
	}
	return e.store.Get(key)
}

// Set stores value under key, superseding any existing value.
func (e *Engine) Set(key, value string) error {
	if e.closed.Load() {
		e.log.Warnw("set attempted on closed engine", "key", key)
		return ErrEngineClosed
	}
	return e.store.Set(key, value)
}

// Remove deletes key. It returns a KeyNotFound error if key is absent.
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		e.log.Warnw("remove attempted on closed engine", "key", key)
		return ErrEngineClosed
	}
	return e.store.Remove(key)
}

// Stats reports the current live key count and the wasted-bytes counter.
func (e *Engine) Stats() (keys int, wasted int64) {
	return e.store.Stats()
}

// Close releases the engine's file handles. It is safe to call once; a
// second call returns ErrEngineClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		e.log.Warnw("close attempted on already-closed engine")
		return ErrEngineClosed
	}

	keys, wasted := e.store.Stats()
	e.log.Infow("closing engine", "keys", keys, "wasted", wasted)
	return e.store.Close()
}
