// Package resize is the raster resampling capability used by the generator.
// Implementations only deal with streams: locating and writing files is the
// caller's job.
package resize

import (
	"fmt"
	"io"
)

type Resizer interface {
	// Width decodes the pixel width of the image read from r
	Width(r io.Reader) (int, error)
	// Resize writes to w the image read from r scaled to width pixels,
	// preserving its aspect ratio
	Resize(r io.Reader, w io.Writer, width int) error
}

// Error reports a failure of the resize capability for one output.
type Error struct {
	Source string
	Target string
	Width  int
	Err    error
}

func (e *Error) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("unable to decode image '%s': %v", e.Source, e.Err)
	}
	return fmt.Sprintf("unable to resize image '%s' to '%s' (%dpx): %v", e.Source, e.Target, e.Width, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
