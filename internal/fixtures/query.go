package fixtures

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// defaultPageSize applies when _page is given without _limit.
const defaultPageSize = 10

// Query is a parsed list request.
type Query struct {
	Title     string
	TitleLike string
	Year      int
	Genre     string
	Sort      string
	Order     string
	Page      int
	Limit     int
}

// ParseQuery reads the list parameters understood by the movies API.
// Unknown parameters are ignored.
func ParseQuery(v url.Values) (Query, error) {
	q := Query{
		Title:     v.Get("title"),
		TitleLike: v.Get("title_like"),
		Genre:     v.Get("genre"),
		Sort:      v.Get("_sort"),
		Order:     strings.ToLower(v.Get("_order")),
	}

	var err error
	if q.Year, err = intParam(v, "year"); err != nil {
		return Query{}, err
	}
	if q.Page, err = intParam(v, "_page"); err != nil {
		return Query{}, err
	}
	if q.Limit, err = intParam(v, "_limit"); err != nil {
		return Query{}, err
	}

	switch q.Order {
	case "", "asc", "desc":
	default:
		return Query{}, fmt.Errorf("%w: _order must be asc or desc", ErrInvalidQuery)
	}
	return q, nil
}

func intParam(v url.Values, name string) (int, error) {
	s := v.Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidQuery, name)
	}
	return n, nil
}

// window returns the LIMIT and OFFSET for q; limit 0 means no pagination.
func (q Query) window() (limit, offset int) {
	limit = q.Limit
	if limit == 0 && q.Page > 0 {
		limit = defaultPageSize
	}
	if limit == 0 {
		return 0, 0
	}
	page := max(q.Page, 1)
	return limit, (page - 1) * limit
}
