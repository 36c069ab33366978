package sessions

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidInput = errors.New("invalid input")
)

// MissingArtifactError reports a required artifact absent from the object
// store. The key names the exact file the caller expected.
type MissingArtifactError struct {
	Key string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("artifact not found: %s", e.Key)
}
