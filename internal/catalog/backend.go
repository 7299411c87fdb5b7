// Package catalog is the data access layer between views and the movies API.
// It owns the in-memory response cache and the live search stream.
package catalog

import (
	"context"
	"net/url"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

//go:generate mockgen -destination=mocks/mock_backend.go -package=mocks . Backend

// Backend is the remote movies API. *moviesapi.Client implements it.
type Backend interface {
	List(ctx context.Context, params url.Values) (moviesapi.Page, error)
	Get(ctx context.Context, id int64) (movie.Movie, error)
}

var _ Backend = (*moviesapi.Client)(nil)
