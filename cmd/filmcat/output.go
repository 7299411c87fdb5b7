package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/ksenia-gurenko/film-catalog/internal/catalog"
	"github.com/ksenia-gurenko/film-catalog/internal/movie"
)

const msgNoMovies = "Фильмы не найдены"

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMovieTable(w io.Writer, movies []movie.Movie) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tНАЗВАНИЕ\tГОД\tРЕЙТИНГ\tЖАНРЫ")
	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", m.ID, m.Title, m.Year, m.RatingFormatted(), m.GenresFormatted())
	}
	_ = tw.Flush()
}

func printMovieDetail(w io.Writer, d catalog.Detail) {
	m := d.Movie
	title := m.Title
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		title += " (" + m.OriginalTitle + ")"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(title))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Год:\t%d\n", m.Year)
	fmt.Fprintf(tw, "Рейтинг:\t%s\n", m.RatingFormatted())
	fmt.Fprintf(tw, "Длительность:\t%s\n", m.DurationFormatted())
	fmt.Fprintf(tw, "Жанры:\t%s\n", m.GenresFormatted())
	fmt.Fprintf(tw, "Режиссёр:\t%s\n", m.Director)
	fmt.Fprintf(tw, "В ролях:\t%s\n", m.CastFormatted())
	fmt.Fprintf(tw, "Постер:\t%s\n", m.PosterURL())
	_ = tw.Flush()

	if m.Description != "" {
		fmt.Fprintf(w, "\n%s\n", m.Description)
	}

	if len(d.Recommended) > 0 {
		fmt.Fprintln(w, "\nРекомендуем:")
		for _, r := range d.Recommended {
			if r.ID == m.ID {
				continue
			}
			fmt.Fprintf(w, "  %d  %s (%s)\n", r.ID, r.Title, r.RatingFormatted())
		}
	}
}

// printEmpty writes the empty-state message for a search, with a "did you
// mean" hint when one of known is close to query.
func printEmpty(w io.Writer, query string, known []movie.Movie) {
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(w, msgNoMovies)
		return
	}
	fmt.Fprintf(w, "По запросу \"%s\" ничего не найдено\n", query)
	if title, ok := movie.Suggest(query, known); ok {
		fmt.Fprintf(w, "Возможно, вы искали: %s\n", title)
	}
}
