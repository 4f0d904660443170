package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidSeries reports a series that cannot be charted.
var ErrInvalidSeries = errors.New("dataset: invalid series")

// NetworkError reports a transport level failure while loading the dataset.
type NetworkError struct {
	Source string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("dataset: load %s: unexpected status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("dataset: load %s: %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a body that is not a valid dataset document.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is one of the recognised load failures.
func IsLoadError(err error) bool {
	var netErr *NetworkError
	var parseErr *ParseError
	return errors.As(err, &netErr) || errors.As(err, &parseErr)
}
