package app

import "errors"

// Sentinel kinds for service errors. The HTTP layer classifies on these
// with errors.Is.
var (
	// ErrNotStarted signals a request before Start completed.
	ErrNotStarted = errors.New("service not started")

	// ErrInvalidPlayer signals an empty or invalid player identity.
	ErrInvalidPlayer = errors.New("invalid player identity")

	// ErrNoGames signals zero games for a player, or zero games left
	// after a time-control filter. Distinct from a fetch failure.
	ErrNoGames = errors.New("no games for player")
)
