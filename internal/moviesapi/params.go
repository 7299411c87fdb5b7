package moviesapi

import (
	"net/url"
	"strconv"
)

// Sort orders accepted by the _order parameter.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams are the query parameters understood by GET /movies.
// Zero values are omitted from the request.
type ListParams struct {
	Page      int    // _page
	Limit     int    // _limit
	Title     string // title (exact)
	Year      int    // year
	Genre     string // genre
	Sort      string // _sort
	Order     string // _order
	TitleLike string // title_like (substring)
}

// Values encodes the set parameters using the API's wire names.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("_page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("_limit", strconv.Itoa(p.Limit))
	}
	if p.Title != "" {
		v.Set("title", p.Title)
	}
	if p.Year > 0 {
		v.Set("year", strconv.Itoa(p.Year))
	}
	if p.Genre != "" {
		v.Set("genre", p.Genre)
	}
	if p.Sort != "" {
		v.Set("_sort", p.Sort)
	}
	if p.Order != "" {
		v.Set("_order", p.Order)
	}
	if p.TitleLike != "" {
		v.Set("title_like", p.TitleLike)
	}
	return v
}
