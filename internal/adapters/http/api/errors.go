package api

import (
	"errors"
	"net/http"

	"github.com/shatranj-dev/shatranj/internal/adapters/lichess"
	"github.com/shatranj-dev/shatranj/internal/app"
	"github.com/shatranj-dev/shatranj/internal/domain/openings"
	"github.com/shatranj-dev/shatranj/internal/domain/style"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// classify maps service errors to an HTTP status and a stable error
// code. Upstream failures surface distinctly from missing data.
func classify(err error) (status int, code string) {
	switch {
	case errors.Is(err, app.ErrInvalidPlayer),
		errors.Is(err, lichess.ErrInvalidUsername),
		errors.Is(err, openings.ErrInvalidSide):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, lichess.ErrUpstream):
		return http.StatusBadGateway, "upstream_fetch_failed"
	case errors.Is(err, app.ErrNoGames):
		return http.StatusNotFound, "no_games"
	case errors.Is(err, style.ErrEmptyPopulation):
		return http.StatusNotFound, "empty_population"
	case errors.Is(err, app.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_ready"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
