// Package apperr defines the error taxonomy shared by all domain services.
// Services tag errors with a kind; handlers translate the kind into an HTTP
// status without inspecting messages.
package apperr

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

var (
	TagNotFound        = goerr.NewTag("not_found")
	TagInvalidInput    = goerr.NewTag("invalid_input")
	TagUnauthorized    = goerr.NewTag("unauthorized")
	TagConflict        = goerr.NewTag("conflict")
	TagNoCandidates    = goerr.NewTag("no_candidates")
	TagNoSuitableMatch = goerr.NewTag("no_suitable_match")
)

func NotFound(msg string, options ...goerr.Option) error {
	return goerr.New(msg, append(options, goerr.T(TagNotFound))...)
}

func InvalidInput(msg string, options ...goerr.Option) error {
	return goerr.New(msg, append(options, goerr.T(TagInvalidInput))...)
}

func Unauthorized(msg string, options ...goerr.Option) error {
	return goerr.New(msg, append(options, goerr.T(TagUnauthorized))...)
}

func Conflict(msg string, options ...goerr.Option) error {
	return goerr.New(msg, append(options, goerr.T(TagConflict))...)
}

func NoCandidates(msg string, options ...goerr.Option) error {
	return goerr.New(msg, append(options, goerr.T(TagNoCandidates))...)
}

func NoSuitableMatch(msg string, options ...goerr.Option) error {
	return goerr.New(msg, append(options, goerr.T(TagNoSuitableMatch))...)
}

// HTTPStatus maps a tagged error to its response status. Untagged errors are
// treated as internal failures.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerr.HasTag(err, TagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, TagUnauthorized):
		return http.StatusForbidden
	case goerr.HasTag(err, TagConflict):
		return http.StatusConflict
	case goerr.HasTag(err, TagInvalidInput):
		return http.StatusBadRequest
	case goerr.HasTag(err, TagNoCandidates), goerr.HasTag(err, TagNoSuitableMatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err carries the given tag. The tag type is
// unexported by goerr, so the parameter type is inferred from goerr.HasTag.
var IsKind = goerr.HasTag
