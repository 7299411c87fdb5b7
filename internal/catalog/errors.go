package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

// User-facing messages for normalized errors.
const (
	MsgGeneric     = "Произошла ошибка при загрузке данных"
	MsgNotFound    = "Фильм не найден"
	MsgServerError = "Ошибка сервера. Попробуйте позже"
)

var (
	// ErrNotFound matches normalized errors for 404 responses.
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidID is returned for non-positive movie ids.
	ErrInvalidID = errors.New("movie id must be positive")
)

// Error is the single normalized failure surfaced by the catalog.
// Message is suitable for showing to the user as is.
type Error struct {
	Status  int // HTTP status, 0 for client-side failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// normalize maps a backend failure to an *Error.
func normalize(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}

	var se *moviesapi.StatusError
	if errors.As(err, &se) {
		e := &Error{Status: se.Code, Err: err}
		switch se.Code {
		case http.StatusNotFound:
			e.Message = MsgNotFound
		case http.StatusInternalServerError:
			e.Message = MsgServerError
		default:
			e.Message = fmt.Sprintf("Ошибка %d: %s", se.Code, se.StatusText())
		}
		return e
	}

	var te *moviesapi.TransportError
	if errors.As(err, &te) {
		return &Error{Message: "Ошибка: " + te.Err.Error(), Err: err}
	}

	return &Error{Message: MsgGeneric, Err: err}
}
