// Package youtube wraps the subset of the YouTube Data API the pipeline
// consumes: keyword search, video details, and top-comment retrieval.
package youtube

import (
	"context"
	"encoding/json"
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

// Details is the video metadata the pipeline consumes. Immutable once fetched.
type Details struct {
	VideoID      string
	Title        string
	Description  string
	ChannelTitle string
	PublishedAt  time.Time
	ThumbnailURL string
}

// Comment is a ranked top-level comment.
type Comment struct {
	Text  string
	Likes int
}

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// Client issues metadata lookups against the YouTube Data API.
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

// NewClient constructs a YouTube client using the supplied configuration.
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
		client.cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	return client
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"`
					LikeCount   int    `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search returns up to maxResults video ids for a query. orderHint follows
// the provider's order parameter values (date, relevance, viewCount).
func (c *Client) Search(ctx context.Context, query string, maxResults int, orderHint string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "youtube", "search", "query required", nil)
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if orderHint = strings.TrimSpace(orderHint); orderHint != "" {
		params.Set("order", orderHint)
	}

	var decoded searchResponse
	if err := c.get(ctx, "/search", params, &decoded); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		if id := strings.TrimSpace(item.ID.VideoID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// GetDetails fetches title, description, channel, publish time, and thumbnail
// for one video. Missing videos surface as ErrNotFound.
func (c *Client) GetDetails(ctx context.Context, videoID string) (*Details, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, "youtube", "details", "video id required", nil)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)

	var decoded videosResponse
	if err := c.get(ctx, "/videos", params, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "youtube", "details", "video "+videoID, nil)
	}

	snippet := decoded.Items[0].Snippet
	published, _ := time.Parse(time.RFC3339, snippet.PublishedAt)
	thumbnail := snippet.Thumbnails.High.URL
	if thumbnail == "" {
		thumbnail = snippet.Thumbnails.Default.URL
	}

	return &Details{
		VideoID:      videoID,
		Title:        snippet.Title,
		Description:  snippet.Description,
		ChannelTitle: snippet.ChannelTitle,
		PublishedAt:  published,
		ThumbnailURL: thumbnail,
	}, nil
}

// GetTopComment returns the most-liked top-level comment after discarding
// comments that carry raw URLs (link spam). Returns nil when no usable
// comment exists. Text is HTML-stripped and truncated to three lines.
func (c *Client) GetTopComment(ctx context.Context, videoID string) (*Comment, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, "youtube", "top comment", "video id required", nil)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("order", "relevance")
	params.Set("maxResults", "20")

	var decoded commentThreadsResponse
	if err := c.get(ctx, "/commentThreads", params, &decoded); err != nil {
		return nil, err
	}

	var best *Comment
	for _, item := range decoded.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		if containsRawURL(snippet.TextDisplay) {
			continue
		}
		text := truncateLines(StripHTML(snippet.TextDisplay), 3)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if best == nil || snippet.LikeCount > best.Likes {
			best = &Comment{Text: text, Likes: snippet.LikeCount}
		}
	}
	return best, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	if c.cfg.APIKey == "" {
		return services.Wrap(services.ErrConfiguration, "youtube", "request", "api key required", nil)
	}
	params.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("youtube request: new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "youtube", "request", "http error", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("youtube request: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrTransient, "youtube", "request",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("youtube request: decode response: %w", err)
	}
	return nil
}

func containsRawURL(text string) bool {
	lowered := strings.ToLower(text)
	return strings.Contains(lowered, "http://") ||
		strings.Contains(lowered, "https://") ||
		strings.Contains(lowered, "www.")
}

func truncateLines(text string, max int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:max], "\n") + "…"
}
