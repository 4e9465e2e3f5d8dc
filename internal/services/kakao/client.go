// Package kakao wraps the Kakao Local keyword-search API. Responses are
// validated at the boundary so malformed payloads surface as typed errors
// instead of leaking into scoring logic.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tubemap/internal/services"
)

const defaultHTTPTimeout = 10 * time.Second

// Place is one validated search result owned by the provider.
type Place struct {
	ID                string
	Name              string
	CategoryPath      string
	CategoryGroupCode string
	Phone             string
	Address           string
	RoadAddress       string
	Lat               float64
	Lng               float64
}

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// Client issues keyword searches against the Kakao Local API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Kakao client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://dapi.kakao.com/v2/local"
	}
	return client
}

type keywordSearchResponse struct {
	Documents []placeDocument `json:"documents"`
}

type placeDocument struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryName      string `json:"category_name"`
	CategoryGroupCode string `json:"category_group_code"`
	Phone             string `json:"phone"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
}

// KeywordSearch runs one keyword search returning at most size places.
func (c *Client) KeywordSearch(ctx context.Context, query string, size int) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "kakao", "keyword search", "query required", nil)
	}
	if c.cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "kakao", "keyword search", "api key required", nil)
	}
	if size <= 0 {
		size = 5
	}

	endpoint := c.cfg.BaseURL + "/search/keyword.json"
	params := url.Values{}
	params.Set("query", query)
	params.Set("size", strconv.Itoa(size))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("kakao request: new request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "kakao", "keyword search", "http error", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("kakao request: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrTransient, "kakao", "keyword search",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var decoded keywordSearchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("kakao request: decode response: %w", err)
	}

	places := make([]Place, 0, len(decoded.Documents))
	for i, doc := range decoded.Documents {
		place, err := doc.toPlace()
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "kakao", "keyword search",
				fmt.Sprintf("document %d", i), err)
		}
		places = append(places, place)
	}
	return places, nil
}

func (d placeDocument) toPlace() (Place, error) {
	id := strings.TrimSpace(d.ID)
	name := strings.TrimSpace(d.PlaceName)
	if id == "" {
		return Place{}, errors.New("missing place id")
	}
	if name == "" {
		return Place{}, errors.New("missing place name")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(d.X), 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse longitude %q: %w", d.X, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(d.Y), 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse latitude %q: %w", d.Y, err)
	}
	return Place{
		ID:                id,
		Name:              name,
		CategoryPath:      strings.TrimSpace(d.CategoryName),
		CategoryGroupCode: strings.TrimSpace(d.CategoryGroupCode),
		Phone:             strings.TrimSpace(d.Phone),
		Address:           strings.TrimSpace(d.AddressName),
		RoadAddress:       strings.TrimSpace(d.RoadAddressName),
		Lat:               lat,
		Lng:               lng,
	}, nil
}
