package explorer

const defaultConcurrency = 8

type FilterFunc func(img Image) (bool, error)

type Options struct {
	// Concurrency bounds the number of files hashed at the same time
	Concurrency int
	Filter      FilterFunc
}

type OptionFunc func(opts *Options)

func WithConcurrency(concurrency int) OptionFunc {
	return func(opts *Options) {
		if concurrency > 0 {
			opts.Concurrency = concurrency
		}
	}
}

// WithFilter drops every image for which filter returns false. Filtering
// happens before duplicate basenames are resolved.
func WithFilter(filter FilterFunc) OptionFunc {
	return func(opts *Options) {
		opts.Filter = filter
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Concurrency: defaultConcurrency,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}
