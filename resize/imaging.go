package resize

import (
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

var (
	ErrUnknownFilter      = errors.New("unknown resample filter")
	ErrUnknownCompression = errors.New("unknown compression level")
)

type Options struct {
	Filter      imaging.ResampleFilter
	Compression png.CompressionLevel
}

type OptionFunc func(opts *Options)

func WithFilter(filter imaging.ResampleFilter) OptionFunc {
	return func(opts *Options) {
		opts.Filter = filter
	}
}

func WithCompression(level png.CompressionLevel) OptionFunc {
	return func(opts *Options) {
		opts.Compression = level
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Filter:      imaging.Lanczos,
		Compression: png.DefaultCompression,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// Imaging resizes PNG images with github.com/disintegration/imaging. Its
// options are fixed at construction, a value is safe for concurrent use.
type Imaging struct {
	opts *Options
}

// Width implements Resizer. Only the image header is decoded.
func (i *Imaging) Width(r io.Reader) (int, error) {
	config, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return config.Width, nil
}

// Resize implements Resizer.
func (i *Imaging) Resize(r io.Reader, w io.Writer, width int) error {
	if width < 1 {
		return errors.Errorf("invalid target width %d", width)
	}

	src, err := imaging.Decode(r)
	if err != nil {
		return errors.WithStack(err)
	}

	dst := imaging.Resize(src, width, 0, i.opts.Filter)

	if err := imaging.Encode(w, dst, imaging.PNG, imaging.PNGCompressionLevel(i.opts.Compression)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewImaging(funcs ...OptionFunc) *Imaging {
	return &Imaging{
		opts: NewOptions(funcs...),
	}
}

var _ Resizer = &Imaging{}

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// FilterByName returns the resample filter matching name, case-insensitive.
func FilterByName(name string) (imaging.ResampleFilter, error) {
	filter, exists := filters[strings.ToLower(name)]
	if !exists {
		return imaging.ResampleFilter{}, errors.Wrapf(ErrUnknownFilter, "'%s'", name)
	}

	return filter, nil
}

var compressions = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

// CompressionByName returns the PNG compression level matching name,
// case-insensitive.
func CompressionByName(name string) (png.CompressionLevel, error) {
	level, exists := compressions[strings.ToLower(name)]
	if !exists {
		return png.DefaultCompression, errors.Wrapf(ErrUnknownCompression, "'%s'", name)
	}

	return level, nil
}
