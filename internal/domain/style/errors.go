package style

import "errors"

// Sentinel kinds for style-space errors.
var (
	// ErrEmptyPopulation signals summarization or fitting over zero
	// style records; the mean is undefined.
	ErrEmptyPopulation = errors.New("empty population")

	// ErrInvalidClusterCount signals a non-positive cluster count.
	ErrInvalidClusterCount = errors.New("invalid cluster count")
)
