package repository

import "errors"

// Sentinel kinds for reference dataset errors.
var (
	ErrOpenDataset = errors.New("open reference dataset failed")
	ErrBadHeader   = errors.New("unexpected reference dataset header")
	ErrBadRow      = errors.New("malformed reference dataset row")
	ErrNoReference = errors.New("reference dataset is empty")
)
