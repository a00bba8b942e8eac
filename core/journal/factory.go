package journal

import "fmt"

// Options selects and configures a Store backend.
type Options struct {
	// Backend is "jsonl" or "sqlite".
	Backend string
	// Path is the JSONL file or the SQLite DSN.
	Path string
	// MaxSizeMB enables rotation of the JSONL file when greater than zero.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewStore opens the store described by opts.
func NewStore(opts Options) (Store, error) {
	switch opts.Backend {
	case "jsonl":
		if opts.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(opts.Path, opts.MaxSizeMB, opts.MaxBackups, opts.MaxAgeDays)
		}
		return NewJSONLStore(opts.Path)
	case "sqlite":
		return NewSQLiteStore(opts.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
