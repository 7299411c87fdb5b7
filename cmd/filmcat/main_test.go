package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ksenia-gurenko/film-catalog/internal/fixtures"
)

// fixtureAPI serves the bundled sample movies and returns the base URL.
func fixtureAPI(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	store, err := fixtures.Open(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = store.LoadSample(ctx)
	require.NoError(t, err)

	srv := httptest.NewServer(fixtures.NewServer(store, nil).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// testConfig writes a config pointing at apiURL with a short debounce.
func testConfig(t *testing.T, apiURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "` + apiURL + `"

[catalog]
page_size = 4
search_debounce = "10ms"

[log]
level = "error"
format = "text"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Побег из Шоушенка")
	assert.Contains(t, out, "Зелёная миля")
	assert.NotContains(t, out, "Интерстеллар", "page size is 4")
	assert.Contains(t, out, "Страница 1, показано 4 из 6")
}

func TestList_JSON(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "--json", "list", "--page", "2")
	require.NoError(t, err)
	assert.Equal(t, int64(6), gjson.Get(out, "total").Int())
	assert.Equal(t, []any{"Интерстеллар", "Леон"}, gjson.Get(out, "movies.#.title").Value())
}

func TestList_APIOverride(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	out, err := runCLI(t, "", "--config", cfg, "--api", fixtureAPI(t), "list", "--genre", "Фантастика")
	require.NoError(t, err)
	assert.Contains(t, out, "Матрица")
	assert.NotContains(t, out, "Леон")
}

func TestShow(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Побег из Шоушенка (The Shawshank Redemption)")
	assert.Contains(t, out, "2ч 22м")
	assert.Contains(t, out, "Тим Роббинс, Морган Фриман, Боб Гантон")
	assert.NotContains(t, out, "Уильям Сэдлер")
	assert.Contains(t, out, "assets/images/posters/shawshank.jpg")
	assert.Contains(t, out, "Рекомендуем:")
	assert.Contains(t, out, "Зелёная миля (10.0)")
}

func TestShow_NotFound(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	_, err := runCLI(t, "", "--config", cfg, "show", "404")
	require.Error(t, err)
	assert.Equal(t, "Фильм не найден", err.Error())
}

func TestShow_BadID(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	_, err := runCLI(t, "", "--config", cfg, "show", "abc")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "search", "нач")
	require.NoError(t, err)
	assert.Contains(t, out, "Начало")
	assert.NotContains(t, out, "Матрица")
}

func TestSearch_EmptyWithSuggestion(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "search", "Матриса")
	require.NoError(t, err)
	assert.Contains(t, out, `По запросу "Матриса" ничего не найдено`)
	assert.Contains(t, out, "Возможно, вы искали: Матрица")
}

func TestTop(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "--json", "top")
	require.NoError(t, err)
	assert.Equal(t, []any{10.0, 9.0, 8.0, 7.0}, gjson.Get(out, "#.rating").Value())
}

func TestTop_Unreachable(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	_, err := runCLI(t, "", "--config", cfg, "top")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Ошибка: "), err.Error())
}

func TestTop_UnreachableHint(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", cfg, "top"})
	require.Error(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "Не удалось подключиться к http://127.0.0.1:1")
}

func TestShow_NotFoundHasNoHint(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", cfg, "show", "999"})
	require.Error(t, cmd.Execute())
	assert.NotContains(t, errOut.String(), "Не удалось подключиться")
}

func TestBrowse(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "м\nма\nмат\n", "--config", cfg, "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "> мат")
	assert.Contains(t, out, "Матрица")
}

func TestBrowse_NoInputShowsEverything(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "", "--config", cfg, "--json", "browse")
	require.NoError(t, err)
	assert.Equal(t, int64(6), gjson.Get(out, "movies.#").Int())
}

func TestBrowse_EmptyResult(t *testing.T) {
	cfg := testConfig(t, fixtureAPI(t))

	out, err := runCLI(t, "ничего такого\n", "--config", cfg, "browse")
	require.NoError(t, err)
	assert.Contains(t, out, `По запросу "ничего такого" ничего не найдено`)
}

func TestConfigInitAndTest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmcat", "config.toml")

	out, err := runCLI(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCLI(t, "", "config", "init", path)
	assert.Error(t, err, "refuses to overwrite")

	_, err = runCLI(t, "", "config", "init", "--force", path)
	assert.NoError(t, err)

	out, err = runCLI(t, "", "config", "test", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid!")
	assert.Contains(t, out, "http://localhost:3000")
}

func TestConfigTest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "${FILMCAT_TEST_UNSET_API_URL}"

[log]
format = "xml"
`), 0o644))

	out, err := runCLI(t, "", "config", "test", path)
	require.Error(t, err)
	assert.Contains(t, out, "Missing environment variables:")
	assert.Contains(t, out, "FILMCAT_TEST_UNSET_API_URL")
	assert.Contains(t, out, "log.format")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "filmcat dev\n", out)
}
