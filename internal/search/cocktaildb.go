package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"barblend/internal/model"

	"go.uber.org/zap"
)

// DefaultBaseURL is TheCocktailDB's public v1 endpoint with the shared test key.
const DefaultBaseURL = "https://www.thecocktaildb.com/api/json/v1/1"

// maxNumberedFields is how many strIngredientN/strMeasureN slots a record carries.
const maxNumberedFields = 15

// ErrNotFound is returned by single-record lookups when the API reports no drink.
var ErrNotFound = errors.New("drink not found")

// Client wraps TheCocktailDB JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new cocktail database client. An empty baseURL uses
// DefaultBaseURL; a zero timeout disables the client-side deadline.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SearchByName returns full drink records whose name contains name.
// No matches yields an empty slice and a nil error.
func (c *Client) SearchByName(ctx context.Context, name string) ([]model.Drink, error) {
	params := url.Values{}
	params.Set("s", name)
	return c.fetchDrinks(ctx, "search.php", params, false)
}

// FilterByIngredient returns partial drink records (ID, name, thumbnail)
// that use the given ingredient.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]model.Drink, error) {
	params := url.Values{}
	params.Set("i", ingredient)
	return c.fetchDrinks(ctx, "filter.php", params, true)
}

// LookupByID fetches the full record for a drink identifier.
func (c *Client) LookupByID(ctx context.Context, id string) (model.Drink, error) {
	params := url.Values{}
	params.Set("i", id)
	drinks, err := c.fetchDrinks(ctx, "lookup.php", params, false)
	if err != nil {
		return model.Drink{}, err
	}
	if len(drinks) == 0 {
		return model.Drink{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	return drinks[0], nil
}

// Random fetches a single randomly selected full drink record.
func (c *Client) Random(ctx context.Context) (model.Drink, error) {
	drinks, err := c.fetchDrinks(ctx, "random.php", nil, false)
	if err != nil {
		return model.Drink{}, err
	}
	if len(drinks) == 0 {
		return model.Drink{}, fmt.Errorf("random: %w", ErrNotFound)
	}
	return drinks[0], nil
}

// FetchThumbnail downloads and decodes a drink image.
func (c *Client) FetchThumbnail(ctx context.Context, imageURL string) (image.Image, error) {
	resp, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("image decode error: %w", err)
	}
	return img, nil
}

func (c *Client) fetchDrinks(ctx context.Context, endpoint string, params url.Values, partial bool) ([]model.Drink, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if params != nil {
		reqURL += "?" + params.Encode()
	}

	start := time.Now()
	resp, err := c.get(ctx, reqURL)
	if err != nil {
		c.logger.Debug("cocktaildb request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	drinks, err := decodeDrinks(resp.Body, partial)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("cocktaildb request",
		zap.String("endpoint", endpoint),
		zap.Int("drinks", len(drinks)),
		zap.Duration("took", time.Since(start)),
	)
	return drinks, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}
	return resp, nil
}

// API response types

type drinksResponse struct {
	Drinks json.RawMessage `json:"drinks"`
}

// decodeDrinks parses a {"drinks": ...} envelope. null, a missing key and the
// string placeholders the filter endpoint returns all mean no results.
func decodeDrinks(body io.Reader, partial bool) ([]model.Drink, error) {
	var result drinksResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}

	raw := bytes.TrimSpace(result.Drinks)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || raw[0] == '"' {
		return []model.Drink{}, nil
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}

	drinks := make([]model.Drink, 0, len(records))
	for _, rec := range records {
		drinks = append(drinks, drinkFromRecord(rec, partial))
	}
	return drinks, nil
}

func drinkFromRecord(rec map[string]any, partial bool) model.Drink {
	d := model.Drink{
		ID:        field(rec, "idDrink"),
		Name:      field(rec, "strDrink"),
		Thumbnail: field(rec, "strDrinkThumb"),
		Partial:   partial,
	}
	if partial {
		return d
	}

	d.Category = field(rec, "strCategory")
	d.Alcoholic = field(rec, "strAlcoholic")
	d.Glass = field(rec, "strGlass")
	d.Instructions = field(rec, "strInstructions")

	for i := 1; i <= maxNumberedFields; i++ {
		n := strconv.Itoa(i)
		ingredient := field(rec, "strIngredient"+n)
		if ingredient == "" {
			continue
		}
		d.Ingredients = append(d.Ingredients, ingredient)
		d.Measures = append(d.Measures, field(rec, "strMeasure"+n))
	}
	return d
}

func field(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
