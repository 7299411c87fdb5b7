package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newSampleStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	n, err := s.LoadSample(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, n)
	return s
}

// ids extracts the id of every document.
func ids(t *testing.T, docs [][]byte) []int64 {
	t.Helper()
	out := make([]int64, len(docs))
	for i, d := range docs {
		out[i] = gjson.GetBytes(d, "id").Int()
	}
	return out
}

func list(t *testing.T, s *Store, q Query) ([]int64, int) {
	t.Helper()
	docs, total, err := s.List(context.Background(), q)
	require.NoError(t, err)
	raw := make([][]byte, len(docs))
	for i, d := range docs {
		raw[i] = d
	}
	return ids(t, raw), total
}

func TestLoad_Shapes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"object", `{"movies":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`, 2},
		{"bare array", `[{"id":7,"title":"C"}]`, 1},
		{"empty", `{"movies":[]}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background())
			require.NoError(t, err)
			defer func() { _ = s.Close() }()

			n, err := s.Load(context.Background(), []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)

			count, err := s.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"movies":[`},
		{"no array", `{"movies":{"id":1}}`},
		{"missing id", `[{"title":"A"}]`},
		{"duplicate id", `[{"id":1},{"id":1}]`},
		{"scalar item", `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background())
			require.NoError(t, err)
			defer func() { _ = s.Close() }()

			_, err = s.Load(context.Background(), []byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidData)

			// Nothing is kept from a failed load.
			count, err := s.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"movies":[{"id":3,"title":"Начало"}]}`), 0o644))

	s, err := Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	s := newSampleStore(t)

	doc, err := s.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Матрица", gjson.GetBytes(doc, "title").String())
	assert.Equal(t, "Лана Вачовски", gjson.GetBytes(doc, "director").String())

	_, err = s.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := newSampleStore(t)

	tests := []struct {
		name      string
		q         Query
		wantIDs   []int64
		wantTotal int
	}{
		{"all", Query{}, []int64{1, 2, 3, 4, 5, 6}, 6},
		{"first page", Query{Page: 1, Limit: 4}, []int64{1, 2, 3, 4}, 6},
		{"second page", Query{Page: 2, Limit: 4}, []int64{5, 6}, 6},
		{"past the end", Query{Page: 5, Limit: 4}, []int64{}, 6},
		{"limit only", Query{Limit: 2}, []int64{1, 2}, 6},
		{"top rated", Query{Sort: "rating", Order: "desc", Limit: 4}, []int64{4, 1, 3, 2}, 6},
		{"year ascending", Query{Sort: "year"}, []int64{1, 6, 2, 4, 3, 5}, 6},
		{"year", Query{Year: 1999}, []int64{2, 4}, 2},
		{"genre", Query{Genre: "Фантастика"}, []int64{2, 3, 5}, 3},
		{"exact title", Query{Title: "Леон"}, []int64{6}, 1},
		{"title like", Query{TitleLike: "мат"}, []int64{2}, 1},
		{"title like ignores case", Query{TitleLike: "НАЧ"}, []int64{3}, 1},
		{"title like folds ё", Query{TitleLike: "зеленая"}, []int64{4}, 1},
		{"combined", Query{Genre: "Драма", Sort: "rating", Order: "desc", Limit: 2}, []int64{4, 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := list(t, s, tt.q)
			assert.Equal(t, tt.wantIDs, got)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestList_TitleLikeKeepsShortI(t *testing.T) {
	s, err := Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	_, err = s.Load(context.Background(), []byte(`[{"id":1,"title":"Мой друг"},{"id":2,"title":"Мои друзья"}]`))
	require.NoError(t, err)

	got, total := list(t, s, Query{TitleLike: "мой"})
	assert.Equal(t, []int64{1}, got)
	assert.Equal(t, 1, total)

	got, _ = list(t, s, Query{TitleLike: "мои"})
	assert.Equal(t, []int64{2}, got)
}

func TestList_UnknownSort(t *testing.T) {
	s := newSampleStore(t)

	_, _, err := s.List(context.Background(), Query{Sort: "doc; DROP TABLE movies"})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
