package explorer

import "fmt"

// ExplorationError reports that the source directory, or one of its images,
// could not be read.
type ExplorationError struct {
	Dir string
	Err error
}

func (e *ExplorationError) Error() string {
	return fmt.Sprintf("unable to explore images in '%s': %v", e.Dir, e.Err)
}

func (e *ExplorationError) Unwrap() error {
	return e.Err
}
