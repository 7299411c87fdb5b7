package catalog

import (
	"context"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
)

// Detail is what the movie page shows: the movie and a few recommendations.
type Detail struct {
	Movie       movie.Movie   `json:"movie"`
	Recommended []movie.Movie `json:"recommended"`
}

// LoadDetail fetches a movie and its recommendations. Failing to load the
// recommendations is not an error; Recommended is left empty.
func (s *Service) LoadDetail(ctx context.Context, id int64, limit int) (Detail, error) {
	m, err := s.GetMovieByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Movie: m}
	recommended, err := s.GetRecommendedMovies(ctx, limit)
	if err != nil {
		s.log.Warn("recommendations unavailable", "movie_id", id, "error", err)
		return d, nil
	}
	d.Recommended = recommended
	return d, nil
}
