package movie

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrNotArray is returned by ListFromJSON when the document is valid JSON but
// not an array.
var ErrNotArray = errors.New("movie list is not a JSON array")

// FromJSON maps a raw JSON object to a Movie.
// Fields that are missing or of the wrong type are left at their zero value;
// the backend contract is trusted and nothing is validated.
func FromJSON(raw []byte) Movie {
	return FromResult(gjson.ParseBytes(raw))
}

// FromResult maps an already parsed JSON object to a Movie.
func FromResult(r gjson.Result) Movie {
	return Movie{
		ID:            r.Get("id").Int(),
		Title:         r.Get("title").String(),
		OriginalTitle: r.Get("originalTitle").String(),
		Year:          int(r.Get("year").Int()),
		Description:   r.Get("description").String(),
		Rating:        r.Get("rating").Float(),
		Duration:      int(r.Get("duration").Int()),
		Genres:        stringSlice(r.Get("genres")),
		Director:      r.Get("director").String(),
		Cast:          stringSlice(r.Get("cast")),
		Poster:        r.Get("poster").String(),
		Background:    r.Get("background").String(),
	}
}

// ListFromJSON maps a JSON array of movie objects.
func ListFromJSON(raw []byte) ([]Movie, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, ErrNotArray
	}

	items := doc.Array()
	movies := make([]Movie, 0, len(items))
	for _, item := range items {
		movies = append(movies, FromResult(item))
	}
	return movies, nil
}

func stringSlice(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
