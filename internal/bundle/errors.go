package bundle

import "fmt"

// MissingFragmentError is returned when a declared fragment cannot be read.
// The artifact being built is discarded.
type MissingFragmentError struct {
	Artifact string
	Fragment string
	Err      error
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("build %s: missing fragment %s: %v", e.Artifact, e.Fragment, e.Err)
}

func (e *MissingFragmentError) Unwrap() error {
	return e.Err
}
