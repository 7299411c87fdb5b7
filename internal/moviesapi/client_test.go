package moviesapi

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("_page"))
		assert.Equal(t, "12", r.URL.Query().Get("_limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Total-Count", "24")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Матрица","rating":8.7},{"id":2,"title":"Начало","rating":8.8}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.List(context.Background(), ListParams{Page: 1, Limit: 12}.Values())
	require.NoError(t, err)

	require.Len(t, page.Movies, 2)
	assert.Equal(t, 24, page.Total)
	assert.Equal(t, "Матрица", page.Movies[0].Title)
	assert.InDelta(t, 8.8, page.Movies[1].Rating, 0.001)
}

func TestClient_List_MissingTotalDefaultsToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery, "no params should produce no query string")
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer server.Close()

	page, err := NewClient(server.URL).List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Movies, 1)
	assert.Equal(t, 0, page.Total)
}

func TestClient_List_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"movies": []}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).List(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":42,"title":"Автостопом по галактике","year":2005}`))
	}))
	defer server.Close()

	m, err := NewClient(server.URL + "/").Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.ID)
	assert.Equal(t, 2005, m.Year)
}

func TestClient_Get_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Get(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "Not Found", se.StatusText())
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).List(context.Background(), nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.False(t, IsTransport(err))
}

func TestClient_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := NewClient(server.URL, WithTimeout(time.Second)).Get(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Contains(t, err.Error(), "request failed")
}

func TestClient_WithLogger_StampsRequestID(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewClient(server.URL, WithLogger(logger)).List(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, gotID)
	assert.Contains(t, buf.String(), "api request")
	assert.Contains(t, buf.String(), "request_id="+gotID)
	assert.Contains(t, buf.String(), "component=moviesapi")
}

func TestClient_WithHTTPClient_NotMutated(t *testing.T) {
	hc := &http.Client{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	_ = NewClient("http://example.invalid", WithHTTPClient(hc), WithLogger(logger))
	assert.Nil(t, hc.Transport, "caller's client must keep its transport")
}

func TestClient_WithTimeout_CopiesHTTPClient(t *testing.T) {
	shared := &http.Client{}

	c := NewClient("http://example.invalid", WithHTTPClient(shared), WithTimeout(time.Second))
	assert.Zero(t, shared.Timeout, "caller's client must keep its timeout")
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)

	_ = NewClient("http://example.invalid", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestClient_NoTimeoutByDefault(t *testing.T) {
	c := NewClient("http://example.invalid")
	assert.Zero(t, c.httpClient.Timeout)
}
