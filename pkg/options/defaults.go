package options

const (
	// DefaultDataDir is used when no directory is given to Open: the
	// current working directory, matching spec.md §6's CLI contract of
	// operating on "the working directory".
	DefaultDataDir = "."

	// DefaultCompactionThreshold is the wasted-bytes threshold at which Set
	// triggers a compaction (spec.md §4.3, §"Glossary").
	DefaultCompactionThreshold int64 = 1 << 16

	// DefaultDataFileName is the fixed stem of the active data file
	// (spec.md §3).
	DefaultDataFileName = "miniKV.data"

	// DefaultCompactFileName is the fixed suffix used for the transient
	// file created during compaction (spec.md §3).
	DefaultCompactFileName = "miniKV.compact"
)

// defaultOptions holds the baseline configuration applied before any
// OptionFunc is layered on.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
	DataFileName:        DefaultDataFileName,
	CompactFileName:     DefaultCompactFileName,
}

// NewDefaultOptions returns a copy of the baseline configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
