package lichess

import "errors"

// Sentinel kinds for upstream transcript errors.
var (
	// ErrUpstream covers non-success responses and timeouts from the
	// transcript service. Never auto-retried.
	ErrUpstream = errors.New("upstream transcript fetch failed")

	// ErrInvalidUsername signals an empty or malformed player identity.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrParsePGN signals a transcript that yielded no parsable games.
	ErrParsePGN = errors.New("parse pgn failed")
)
