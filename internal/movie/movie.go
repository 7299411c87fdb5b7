// Package movie defines the movie record shared by the API client, the
// catalog cache and the CLI views.
package movie

import (
	"fmt"
	"strings"
)

const (
	assetsDir         = "assets/images/"
	placeholderPoster = assetsDir + "posters/placeholder.jpg"
)

// Movie is one catalog entry as served by the movies API.
// Values are never modified after construction; derived display strings are
// computed on demand.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle"`
	Year          int      `json:"year"`
	Description   string   `json:"description"`
	Rating        float64  `json:"rating"`   // 0-10
	Duration      int      `json:"duration"` // minutes
	Genres        []string `json:"genres"`
	Director      string   `json:"director"`
	Cast          []string `json:"cast"`
	Poster        string   `json:"poster"`     // filename, assets path or absolute URL
	Background    string   `json:"background"` // same shape as Poster
}

// DurationFormatted renders the runtime as hours and minutes, e.g. "2ч 22м".
func (m Movie) DurationFormatted() string {
	return fmt.Sprintf("%dч %dм", m.Duration/60, m.Duration%60)
}

// RatingFormatted renders the rating with one decimal place.
func (m Movie) RatingFormatted() string {
	return fmt.Sprintf("%.1f", m.Rating)
}

func (m Movie) GenresFormatted() string {
	return strings.Join(m.Genres, ", ")
}

// CastFormatted lists the first three cast members.
func (m Movie) CastFormatted() string {
	cast := m.Cast
	if len(cast) > 3 {
		cast = cast[:3]
	}
	return strings.Join(cast, ", ")
}

// PosterURL resolves the poster reference to something a view can load.
func (m Movie) PosterURL() string {
	return resolveImage(m.Poster, "posters/")
}

// BackgroundURL resolves the background reference like PosterURL.
// Movies without a background fall back to the poster placeholder.
func (m Movie) BackgroundURL() string {
	return resolveImage(m.Background, "backgrounds/")
}

func resolveImage(ref, dir string) string {
	switch {
	case ref == "":
		return placeholderPoster
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.Contains(ref, "assets/"):
		return ref
	default:
		return assetsDir + dir + strings.TrimPrefix(ref, "/")
	}
}
