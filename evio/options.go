package evio

import "go.uber.org/zap"

// OpenOptions controls logging and decoding behavior of a File.
type OpenOptions struct {
	// Logger receives scan progress (debug), scan failures (error) and soft
	// event decode failures (debug). Nil disables logging.
	Logger *zap.Logger

	// CacheSize bounds an LRU of decoded event banks keyed by
	// (record, event). Zero disables caching; every call then decodes anew.
	CacheSize int

	// MaxDepth guards against absurdly nested containers.
	// Zero selects format.DefaultMaxNestingDepth.
	MaxDepth int
}

func (o OpenOptions) withDefaults() OpenOptions {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	return o
}
