package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
	"github.com/ksenia-gurenko/film-catalog/internal/moviesapi"
)

const (
	// DefaultDebounce is how long search input must settle before a fetch.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultRecommendedLimit is used when GetRecommendedMovies gets limit <= 0.
	DefaultRecommendedLimit = 4
)

// ErrAlreadyRunning is returned by Run when the search stream is already
// being driven by another goroutine.
var ErrAlreadyRunning = errors.New("catalog: search stream already running")

// Service is the single point of contact between views and the movies API.
// Create it with New, drive the search stream with Run, and share one
// instance between all consumers of a process.
type Service struct {
	backend Backend
	cache   cache
	flight  singleflight.Group
	metrics *Metrics
	log     *slog.Logger

	debounce         time.Duration
	recommendedLimit int
	registerer       prometheus.Registerer

	search  *searchStream
	running atomic.Bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for failures and stream diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log.With("component", "catalog")
	}
}

// WithDebounce sets the search input debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		s.debounce = d
	}
}

// WithRecommendedLimit changes the default number of recommended movies.
func WithRecommendedLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recommendedLimit = n
		}
	}
}

// WithRegisterer registers the cache metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = reg
	}
}

// New creates a Service on top of backend.
func New(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:          backend,
		log:              slog.Default().With("component", "catalog"),
		debounce:         DefaultDebounce,
		recommendedLimit: DefaultRecommendedLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = NewMetrics(s.registerer)
	s.search = newSearchStream(s.debounce, s.SearchMovies, s.log)
	return s
}

// Metrics exposes the service's collectors.
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// GetMovies returns one page of movies. A cached page reports its own length
// as the total.
func (s *Service) GetMovies(ctx context.Context, params moviesapi.ListParams) (moviesapi.Page, error) {
	values := params.Values()
	key := listKey(values)

	page, hit, err := cached(ctx, s, kindList, &s.cache.lists, key, kindList+":"+key, func(ctx context.Context) (moviesapi.Page, error) {
		return s.backend.List(ctx, values)
	})
	if err != nil {
		return moviesapi.Page{}, err
	}

	movies := slices.Clone(page.Movies)
	if hit {
		return moviesapi.Page{Movies: movies, Total: len(movies)}, nil
	}
	return moviesapi.Page{Movies: movies, Total: page.Total}, nil
}

// GetMovieByID returns a single movie. Concurrent callers for the same id
// share one request; later callers are served from the cache.
func (s *Service) GetMovieByID(ctx context.Context, id int64) (movie.Movie, error) {
	if id <= 0 {
		return movie.Movie{}, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	flightKey := kindMovie + ":" + strconv.FormatInt(id, 10)
	m, _, err := cached(ctx, s, kindMovie, &s.cache.movies, id, flightKey, func(ctx context.Context) (movie.Movie, error) {
		return s.backend.Get(ctx, id)
	})
	return m, err
}

// SearchMovies returns movies whose title contains query. A blank query is
// the same request as GetMovies without parameters.
func (s *Service) SearchMovies(ctx context.Context, query string) ([]movie.Movie, error) {
	q := movie.NormalizeQuery(query)
	if q == "" {
		page, err := s.GetMovies(ctx, moviesapi.ListParams{})
		if err != nil {
			return nil, err
		}
		return page.Movies, nil
	}

	movies, _, err := cached(ctx, s, kindSearch, &s.cache.searches, q, kindSearch+":"+q, func(ctx context.Context) ([]movie.Movie, error) {
		page, err := s.backend.List(ctx, moviesapi.ListParams{TitleLike: q}.Values())
		return page.Movies, err
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(movies), nil
}

// GetRecommendedMovies returns the limit best rated movies, highest first.
func (s *Service) GetRecommendedMovies(ctx context.Context, limit int) ([]movie.Movie, error) {
	if limit <= 0 {
		limit = s.recommendedLimit
	}

	params := moviesapi.ListParams{Sort: "rating", Order: moviesapi.OrderDesc, Limit: limit}
	flightKey := kindRecommended + ":" + strconv.Itoa(limit)
	movies, _, err := cached(ctx, s, kindRecommended, &s.cache.recommended, limit, flightKey, func(ctx context.Context) ([]movie.Movie, error) {
		page, err := s.backend.List(ctx, params.Values())
		return page.Movies, err
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(movies), nil
}

// ClearCache drops every cached response.
func (s *Service) ClearCache() {
	n := s.cache.size()
	s.cache.clear()
	s.log.Debug("cache cleared", "entries", n)
}

// SetSearchQuery feeds the live search stream.
func (s *Service) SetSearchQuery(query string) {
	s.search.push(query)
}

// Subscribe attaches to the live search stream. The channel receives the
// latest result (if any) immediately and every later one; slow readers only
// ever see the most recent result. Call cancel to detach.
func (s *Service) Subscribe() (results <-chan SearchResult, cancel func()) {
	return s.search.subscribe()
}

// Run drives the search stream until ctx is done. It must be called at most
// once per Service.
func (s *Service) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return s.search.run(ctx)
}

// cached serves key from t, or fetches it once through the singleflight group
// and stores the result. hit reports whether the value came from the cache.
//
// The shared fetch runs detached from the cancellation of whichever caller
// started it. Each caller stops waiting when its own ctx is done; the fetch
// still completes and fills the cache for the others.
func cached[K comparable, V any](ctx context.Context, s *Service, kind string, t *table[K, V], key K, flightKey string, fetch func(context.Context) (V, error)) (v V, hit bool, err error) {
	if v, ok := t.get(key); ok {
		s.metrics.hit(kind)
		return v, true, nil
	}
	s.metrics.miss(kind)

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(flightKey, func() (any, error) {
		if v, ok := t.get(key); ok {
			return v, nil
		}
		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		t.set(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		s.log.Debug("caller left shared fetch", "kind", kind, "error", ctx.Err())
		return zero, false, normalize(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return zero, false, s.fail(kind, res.Err)
		}
		return res.Val.(V), false, nil
	}
}

func (s *Service) fail(kind string, err error) *Error {
	s.metrics.fail(kind)
	e := normalize(err)
	s.log.Error("movies API request failed", "kind", kind, "status", e.Status, "message", e.Message, "error", err)
	return e
}
