package assetgen

import (
	"log/slog"

	"github.com/bornholm/go-assetgen/filter"
	"github.com/bornholm/go-assetgen/metrics"
	"github.com/bornholm/go-assetgen/resize"
	"golang.org/x/net/webdav"
)

type Options struct {
	Resizer     resize.Resizer
	Logger      *slog.Logger
	Concurrency int
	Filter      *filter.Filter
	Middlewares []Middleware
	// Metrics, when set, records every Run
	Metrics *metrics.Collector
	// Source replaces the local images directory of the project
	Source webdav.FileSystem
	// Output replaces the local platform resource tree of the project
	Output webdav.FileSystem
}

type OptionFunc func(opts *Options)

func WithResizer(resizer resize.Resizer) OptionFunc {
	return func(opts *Options) {
		opts.Resizer = resizer
	}
}

func WithPipelineLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func WithConcurrency(concurrency int) OptionFunc {
	return func(opts *Options) {
		opts.Concurrency = concurrency
	}
}

func WithFilter(f *filter.Filter) OptionFunc {
	return func(opts *Options) {
		opts.Filter = f
	}
}

func WithMiddlewares(middlewares ...Middleware) OptionFunc {
	return func(opts *Options) {
		opts.Middlewares = middlewares
	}
}

func WithMetrics(collector *metrics.Collector) OptionFunc {
	return func(opts *Options) {
		opts.Metrics = collector
	}
}

func WithSource(fs webdav.FileSystem) OptionFunc {
	return func(opts *Options) {
		opts.Source = fs
	}
}

func WithOutput(fs webdav.FileSystem) OptionFunc {
	return func(opts *Options) {
		opts.Output = fs
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Resizer:     resize.NewImaging(),
		Logger:      slog.Default(),
		Middlewares: make([]Middleware, 0),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}
