// Package fixtures is a small stand-in for the movies API used in development
// and integration tests. Movies are kept in an in-memory SQLite database and
// served with the same query parameters and headers as the real backend.
package fixtures

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
)

//go:embed schema.sql
var schema string

//go:embed sample.json
var sampleData []byte

var (
	// ErrNotFound is returned when a movie id is not in the store.
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidData is returned by Load for unusable input.
	ErrInvalidData = errors.New("invalid movie data")

	// ErrInvalidQuery is returned for list parameters the store cannot serve.
	ErrInvalidQuery = errors.New("invalid query")
)

// sortColumns maps the sortable movie fields to their columns.
var sortColumns = map[string]string{
	"id":       "id",
	"title":    "title",
	"year":     "year",
	"rating":   "rating",
	"duration": "duration",
	"director": "director",
}

// Store holds the fixture movies.
type Store struct {
	db *sql.DB
}

// Open creates an empty in-memory store.
func Open(ctx context.Context) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSample loads the bundled demo movies.
func (s *Store) LoadSample(ctx context.Context) (int, error) {
	return s.Load(ctx, sampleData)
}

// LoadFile loads movies from a json-server style db.json file.
func (s *Store) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixtures: %w", err)
	}
	n, err := s.Load(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Load inserts movies from data, which is either {"movies": [...]} or a bare
// array. Every movie needs a positive numeric id. It returns the number of
// movies loaded.
func (s *Store) Load(ctx context.Context, data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("%w: malformed JSON", ErrInvalidData)
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("movies")
	}
	if !root.IsArray() {
		return 0, fmt.Errorf("%w: expected an array of movies", ErrInvalidData)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		n       int
		loadErr error
	)
	root.ForEach(func(_, v gjson.Result) bool {
		if loadErr = insertMovie(ctx, tx, v); loadErr != nil {
			return false
		}
		n++
		return true
	})
	if loadErr != nil {
		return 0, loadErr
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func insertMovie(ctx context.Context, tx *sql.Tx, v gjson.Result) error {
	id := v.Get("id").Int()
	if !v.IsObject() || id <= 0 {
		return fmt.Errorf("%w: movie without a positive id: %.40s", ErrInvalidData, v.Raw)
	}

	title := v.Get("title").String()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO movies (id, title, title_folded, year, rating, duration, director, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, title, movie.FoldTitle(title), v.Get("year").Int(), v.Get("rating").Float(),
		v.Get("duration").Int(), v.Get("director").String(), v.Raw,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: duplicate movie id %d", ErrInvalidData, id)
		}
		return fmt.Errorf("insert movie %d: %w", id, err)
	}

	for _, g := range v.Get("genres").Array() {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO movie_genres (movie_id, genre) VALUES (?, ?)", id, g.String(),
		); err != nil {
			return fmt.Errorf("insert genre for movie %d: %w", id, err)
		}
	}
	return nil
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// Get returns the stored document of one movie.
// Returns ErrNotFound if there is no movie with that id.
func (s *Store) Get(ctx context.Context, id int64) (json.RawMessage, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM movies WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return json.RawMessage(doc), nil
}

// List returns the movies matching q along with the number of matches
// before pagination.
func (s *Store) List(ctx context.Context, q Query) ([]json.RawMessage, int, error) {
	var conditions []string
	var args []any

	if q.Title != "" {
		conditions = append(conditions, "title = ?")
		args = append(args, q.Title)
	}
	if q.TitleLike != "" {
		conditions = append(conditions, "instr(title_folded, ?) > 0")
		args = append(args, movie.FoldTitle(q.TitleLike))
	}
	if q.Year != 0 {
		conditions = append(conditions, "year = ?")
		args = append(args, q.Year)
	}
	if q.Genre != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM movie_genres g WHERE g.movie_id = movies.id AND g.genre = ?)")
		args = append(args, q.Genre)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "id"
	if q.Sort != "" {
		col, ok := sortColumns[q.Sort]
		if !ok {
			return nil, 0, fmt.Errorf("%w: cannot sort by %q", ErrInvalidQuery, q.Sort)
		}
		dir := "ASC"
		if q.Order == "desc" {
			dir = "DESC"
		}
		orderBy = col + " " + dir + ", id"
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	query := "SELECT doc FROM movies " + whereClause + " ORDER BY " + orderBy
	if limit, offset := q.window(); limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := []json.RawMessage{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, fmt.Errorf("scan movie: %w", err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate movies: %w", err)
	}
	return docs, total, nil
}
