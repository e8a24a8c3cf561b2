package sdf

import (
	"github.com/juanjosegarciaripoll/tensor/blobstore"
)

// DuplicatePolicy decides what happens when a container holds two records
// with the same name.
type DuplicatePolicy int

const (
	// DuplicateError fails the load with ErrDuplicateField.
	DuplicateError DuplicatePolicy = iota
	// DuplicateOverwrite keeps the later record, at the earlier one's
	// position in the field order.
	DuplicateOverwrite
)

// Option configures loading and combining.
type Option func(*options)

type options struct {
	ignore      map[string]struct{}
	duplicates  DuplicatePolicy
	lenient     bool
	logger      *Logger
	store       blobstore.Store
	concurrency int
}

func newOptions(opts []Option) *options {
	o := &options{
		ignore:      make(map[string]struct{}),
		duplicates:  DuplicateError,
		logger:      NoopLogger(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) ignored(name string) bool {
	_, ok := o.ignore[name]
	return ok
}

// WithIgnore names fields that are parsed but not kept. May be given more
// than once.
func WithIgnore(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.ignore[name] = struct{}{}
		}
	}
}

// WithDuplicatePolicy sets how repeated field names within one container are
// handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithLenientCombine makes Combine drop fields whose shapes disagree across
// datasets instead of failing.
func WithLenientCombine() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithStore reads containers through store instead of the local file system.
// Paths given to Load and ReadDirectory are then names within the store.
func WithStore(s blobstore.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithConcurrency decodes up to n files of a directory in parallel. Results
// keep listing order.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
