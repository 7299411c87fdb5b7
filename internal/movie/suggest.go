package movie

import (
	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.75

// Suggest returns the title closest to query among movies, for "did you mean"
// hints on empty search results. ok is false when nothing is close enough.
func Suggest(query string, movies []Movie) (title string, ok bool) {
	q := FoldTitle(query)
	if q == "" {
		return "", false
	}

	var best float32
	for _, m := range movies {
		score := edlib.JaroWinklerSimilarity(q, FoldTitle(m.Title))
		if score > best {
			best = score
			title = m.Title
		}
	}
	if best < suggestThreshold {
		return "", false
	}
	return title, true
}
