package generator

import (
	"log/slog"
	"os"
	"runtime"
)

type Options struct {
	// Concurrency bounds the number of basenames processed at the same time
	Concurrency int
	Logger      *slog.Logger
	FileMode    os.FileMode
	DirMode     os.FileMode
}

type OptionFunc func(opts *Options)

func WithConcurrency(concurrency int) OptionFunc {
	return func(opts *Options) {
		if concurrency > 0 {
			opts.Concurrency = concurrency
		}
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func WithFileMode(mode os.FileMode) OptionFunc {
	return func(opts *Options) {
		opts.FileMode = mode
	}
}

func WithDirMode(mode os.FileMode) OptionFunc {
	return func(opts *Options) {
		opts.DirMode = mode
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Concurrency: runtime.NumCPU(),
		Logger:      slog.Default(),
		FileMode:    0o644,
		DirMode:     0o755,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}
