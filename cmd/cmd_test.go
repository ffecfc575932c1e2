package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"barblend/internal/config"
	"barblend/internal/db"
	"barblend/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const negroniJSON = `{"drinks":[{"idDrink":"11003","strDrink":"Negroni","strCategory":"Ordinary Drink",
	"strGlass":"Old-fashioned glass","strInstructions":"Stir into glass over ice.",
	"strIngredient1":"Gin","strMeasure1":"1 oz","strIngredient2":"Campari","strMeasure2":"1 oz"}]}`

// useTestEnv points the package globals at a temp dir and the given API.
func useTestEnv(t *testing.T, apiURL string, history bool) {
	t.Helper()
	dir := t.TempDir()

	cfg = config.Default()
	cfg.APIBase = apiURL
	cfg.Timeout = config.Duration{Duration: 2 * time.Second}
	cfg.HistoryEnabled = history
	configDir = dir
	dbPath = filepath.Join(dir, "history.db")
	logger = zap.NewNop()
	noHistory = false
	searchByIngredient = false
	searchLimit = 0
	historyLimit = 20
	historyClear = false
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	return c, &buf
}

func TestRunSearchByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		_, _ = w.Write([]byte(negroniJSON))
	}))
	defer srv.Close()
	useTestEnv(t, srv.URL, true)

	c, out := newTestCommand()
	require.NoError(t, runSearch(c, []string{"negroni"}))

	assert.Contains(t, out.String(), "1 drink\n")
	assert.Contains(t, out.String(), "Negroni")
	assert.Contains(t, out.String(), "Gin, Campari")

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
	entries, err := db.ListRecentSearches(database, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "negroni", entries[0].Term)
}

func TestRunSearchSendsTermAsTyped(t *testing.T) {
	var received []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search.php" {
			received = append(received, r.URL.Query().Get("s"))
		}
		_, _ = w.Write([]byte(negroniJSON))
	}))
	defer srv.Close()
	useTestEnv(t, srv.URL, true)

	c, _ := newTestCommand()
	require.NoError(t, runSearch(c, []string{" vodka "}))
	c, _ = newTestCommand()
	require.NoError(t, runSearch(c, []string{"  "}))
	assert.Equal(t, []string{" vodka ", "  "}, received)

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()
	entries, err := db.ListRecentSearches(database, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vodka", entries[0].Term)
}

func TestRunSearchByIngredient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			assert.Equal(t, "gin", r.URL.Query().Get("i"))
			_, _ = w.Write([]byte(`{"drinks":[{"idDrink":"11003","strDrink":"Negroni","strDrinkThumb":"x"}]}`))
		case "/lookup.php":
			_, _ = w.Write([]byte(negroniJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	useTestEnv(t, srv.URL, false)
	searchByIngredient = true

	c, out := newTestCommand()
	require.NoError(t, runSearch(c, []string{"gin"}))
	assert.Contains(t, out.String(), "Gin, Campari")
	assert.NoFileExists(t, dbPath)
}

func TestRunSearchIngredientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"drinks":"no data found"}`))
	}))
	defer srv.Close()
	useTestEnv(t, srv.URL, false)
	searchByIngredient = true

	c, out := newTestCommand()
	require.NoError(t, runSearch(c, []string{"unobtainium"}))
	assert.Equal(t, "No drinks found with that ingredient!\n", out.String())
}

func TestRunSearchNetworkFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	useTestEnv(t, srv.URL, false)

	c, out := newTestCommand()
	err := runSearch(c, []string{"negroni"})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Couldn't reach the cocktail database")
}

func TestRunRandomPrintsRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random.php", r.URL.Path)
		_, _ = w.Write([]byte(negroniJSON))
	}))
	defer srv.Close()
	useTestEnv(t, srv.URL, false)

	c, out := newTestCommand()
	require.NoError(t, runRandom(c, nil))
	assert.Contains(t, out.String(), "# Negroni")
	assert.Contains(t, out.String(), "- 1 oz Gin")
	assert.Contains(t, out.String(), "Stir into glass over ice.")
}

func TestRunHistory(t *testing.T) {
	useTestEnv(t, "http://unused.invalid", true)

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	_, err = db.InsertSearch(database, model.NewHistoryEntry{
		Term: "vodka", Mode: model.ModeByIngredient, Outcome: "results", ResultCount: 10,
	})
	require.NoError(t, err)
	require.NoError(t, database.Close())

	c, out := newTestCommand()
	require.NoError(t, runHistory(c, nil))
	assert.Contains(t, out.String(), "vodka")
	assert.Contains(t, out.String(), "Ingredient")
	assert.Contains(t, out.String(), "10 drinks")

	historyClear = true
	c, out = newTestCommand()
	require.NoError(t, runHistory(c, nil))
	assert.Equal(t, "Search history cleared.\n", out.String())
}

func TestRunHistoryDisabled(t *testing.T) {
	useTestEnv(t, "http://unused.invalid", true)
	noHistory = true

	c, _ := newTestCommand()
	assert.Error(t, runHistory(c, nil))
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("BARBLEND_TEST_A", "")
	t.Setenv("BARBLEND_TEST_B", "keep")

	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nBARBLEND_TEST_A=\"https://example.test\"\nBARBLEND_TEST_B=override\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loadDotEnv(path)
	assert.Equal(t, "https://example.test", os.Getenv("BARBLEND_TEST_A"))
	assert.Equal(t, "keep", os.Getenv("BARBLEND_TEST_B"))
}

func TestLoadOrCreateConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	loaded, err := loadOrCreateConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)
	assert.FileExists(t, path)
}

func TestOnboardingSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	settings, err := loadOnboardingSettings(dir)
	require.NoError(t, err)
	assert.False(t, settings.Completed)

	require.NoError(t, saveOnboardingSettings(dir, OnboardingSettings{Completed: true, HistoryEnabled: false}))
	settings, err = loadOnboardingSettings(dir)
	require.NoError(t, err)
	assert.True(t, settings.Completed)
	assert.False(t, settings.HistoryEnabled)
	assert.False(t, shouldRunOnboarding(settings))
}

func TestOnboardingModelChoices(t *testing.T) {
	m := newOnboardingModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.NotNil(t, cmd)
	got := next.(onboardingModel)
	assert.Equal(t, stepDone, got.step)
	assert.False(t, got.settings.HistoryEnabled)
	assert.True(t, got.settings.Completed)

	m = newOnboardingModel()
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got = next.(onboardingModel)
	assert.True(t, got.settings.HistoryEnabled)
	assert.Contains(t, got.View(), "Search history on.")
}
