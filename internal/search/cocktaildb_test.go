package search

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const margaritaJSON = `{"drinks":[{
	"idDrink":"11007","strDrink":"Margarita","strDrinkThumb":"https://img/margarita.jpg",
	"strCategory":"Ordinary Drink","strAlcoholic":"Alcoholic","strGlass":"Cocktail glass",
	"strInstructions":"Rub the rim of the glass with the lime slice.",
	"strIngredient1":"Tequila","strMeasure1":"1 1/2 oz ",
	"strIngredient2":"Triple sec","strMeasure2":"1/2 oz ",
	"strIngredient3":"","strMeasure3":null,
	"strIngredient4":"Salt","strMeasure4":null,
	"strIngredient5":null
}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil)
}

func TestSearchByNameParsesFullRecord(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("s")
		_, _ = w.Write([]byte(margaritaJSON))
	})

	drinks, err := c.SearchByName(context.Background(), "margarita")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "/search.php", gotPath)
	assert.Equal(t, "margarita", gotQuery)

	d := drinks[0]
	assert.Equal(t, "11007", d.ID)
	assert.Equal(t, "Margarita", d.Name)
	assert.False(t, d.Partial)
	assert.Equal(t, "Cocktail glass", d.Glass)
	assert.Equal(t, []string{"Tequila", "Triple sec", "Salt"}, d.Ingredients)
	assert.Equal(t, []string{"1 1/2 oz", "1/2 oz", ""}, d.Measures)
	assert.Equal(t, "1 1/2 oz Tequila", d.IngredientLine(0))
	assert.Equal(t, "Salt", d.IngredientLine(2))
}

func TestSearchByNameSendsEmptyTermAsIs(t *testing.T) {
	var raw string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"drinks":null}`))
	})

	drinks, err := c.SearchByName(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, drinks)
	assert.Equal(t, "s=", raw)
}

func TestFilterByIngredientNoResultsVariants(t *testing.T) {
	bodies := []string{
		`{"drinks":null}`,
		`{"drinks":"no data found"}`,
		`{"drinks":[]}`,
		`{}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			drinks, err := c.FilterByIngredient(context.Background(), "unobtainium")
			require.NoError(t, err)
			assert.Empty(t, drinks)
		})
	}
}

func TestFilterByIngredientReturnsPartials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filter.php", r.URL.Path)
		assert.Equal(t, "Vodka", r.URL.Query().Get("i"))
		_, _ = w.Write([]byte(`{"drinks":[
			{"strDrink":"155 Belmont","strDrinkThumb":"https://img/1.jpg","idDrink":"15346"},
			{"strDrink":"Black Russian","strDrinkThumb":"https://img/2.jpg","idDrink":"11243"}]}`))
	})

	drinks, err := c.FilterByIngredient(context.Background(), "Vodka")
	require.NoError(t, err)
	require.Len(t, drinks, 2)
	for _, d := range drinks {
		assert.True(t, d.Partial)
		assert.Empty(t, d.Ingredients)
	}
	assert.Equal(t, "11243", drinks[1].ID)
}

func TestLookupByIDNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"drinks":null}`))
	})

	_, err := c.LookupByID(context.Background(), "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRandomStatusAndDecodeErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.Random(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("malformed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		})
		_, err := c.Random(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JSON decode error")
	})
}

func TestFetchThumbnailDecodesPNG(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{R: 255, A: 255})
		w.Header().Set("Content-Type", "image/png")
		assert.NoError(t, png.Encode(w, img))
	})

	img, err := c.FetchThumbnail(context.Background(), c.baseURL+"/thumb.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	c := NewClient("", 0, nil)
	assert.Equal(t, DefaultBaseURL, c.baseURL)

	c = NewClient("http://example.test/api/", 0, nil)
	assert.False(t, strings.HasSuffix(c.baseURL, "/"))
}
