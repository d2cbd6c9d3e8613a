// Package apify implements the content source against the Apify actor API.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	sourceconfig "github.com/trovehq/prowler/internal/config/source"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/source"
)

// Actor identifiers per platform. Runs are synchronous: the API call
// blocks until the actor finishes and returns its dataset items.
const (
	instagramActorID = "apify~instagram-post-scraper"
	tiktokActorID    = "clockworks~tiktok-scraper"
	youtubeActorID   = "streamers~youtube-scraper"
)

// Client fetches posts by running Apify scraper actors synchronously.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     logger.Interface
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the Apify API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient creates an Apify-backed content source.
func NewClient(cfg *sourceconfig.Config, log logger.Interface, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		logger:     log.WithComponent("apify"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// FetchRecentPosts runs the platform's scraper actor for the handle and
// maps the dataset items into raw posts.
func (c *Client) FetchRecentPosts(
	ctx context.Context,
	handle string,
	platform domain.Platform,
	limit int,
) ([]domain.RawPost, error) {
	actorID, input, err := actorRequest(handle, platform, limit)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("running scraper actor",
		"actor_id", actorID,
		"handle", handle,
		"platform", platform,
		"limit", limit,
	)

	items, err := c.runActorSync(ctx, actorID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run actor %s: %w", actorID, err)
	}

	posts := make([]domain.RawPost, 0, len(items))
	for _, item := range items {
		post, decodeErr := decodePost(item, platform)
		if decodeErr != nil {
			c.logger.Warn("skipping undecodable dataset item",
				"platform", platform,
				"error", decodeErr,
			)
			continue
		}
		if post.Caption == "" {
			continue
		}
		posts = append(posts, post)
		if len(posts) >= limit {
			break
		}
	}

	return posts, nil
}

// actorRequest builds the actor ID and run input for a platform.
func actorRequest(handle string, platform domain.Platform, limit int) (string, map[string]any, error) {
	switch platform {
	case domain.PlatformInstagram:
		return instagramActorID, map[string]any{
			"username":     []string{handle},
			"resultsLimit": limit,
		}, nil
	case domain.PlatformTikTok:
		return tiktokActorID, map[string]any{
			"profiles":       []string{handle},
			"resultsPerPage": limit,
		}, nil
	case domain.PlatformYouTube:
		return youtubeActorID, map[string]any{
			"startUrls":  []map[string]string{{"url": "https://www.youtube.com/@" + handle}},
			"maxResults": limit,
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", source.ErrUnsupportedPlatform, platform)
	}
}

// runActorSync calls the run-sync-get-dataset-items endpoint and returns
// the raw dataset items.
func (c *Client) runActorSync(ctx context.Context, actorID string, input map[string]any) ([]map[string]any, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, actorID, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("actor run returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode dataset items: %w", err)
	}

	c.logger.WithDuration(time.Since(start)).Debug("actor run finished",
		"actor_id", actorID,
		"items", len(items),
	)

	return items, nil
}

// datasetItem is the superset of fields the scraper actors emit that the
// pipeline cares about. Field names differ per actor, so several aliases
// map onto the same post attribute.
type datasetItem struct {
	ID          string `mapstructure:"id"`
	ShortCode   string `mapstructure:"shortCode"`
	Caption     string `mapstructure:"caption"`
	Text        string `mapstructure:"text"`
	Title       string `mapstructure:"title"`
	URL         string `mapstructure:"url"`
	WebVideoURL string `mapstructure:"webVideoUrl"`
	DisplayURL  string `mapstructure:"displayUrl"`
	CoverURL    string `mapstructure:"coverUrl"`
}

// decodePost converts one dataset item into a raw post.
func decodePost(item map[string]any, platform domain.Platform) (domain.RawPost, error) {
	var decoded datasetItem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.RawPost{}, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(item); err != nil {
		return domain.RawPost{}, fmt.Errorf("failed to decode dataset item: %w", err)
	}

	post := domain.RawPost{
		PostID:   firstNonEmpty(decoded.ID, decoded.ShortCode),
		Caption:  firstNonEmpty(decoded.Caption, decoded.Text, decoded.Title),
		MediaURL: firstNonEmpty(decoded.DisplayURL, decoded.CoverURL),
		URL:      firstNonEmpty(decoded.URL, decoded.WebVideoURL),
	}

	// Instagram items sometimes carry only the shortcode.
	if post.URL == "" && platform == domain.PlatformInstagram && decoded.ShortCode != "" {
		post.URL = "https://www.instagram.com/p/" + decoded.ShortCode + "/"
	}

	return post, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ source.ContentSource = (*Client)(nil)
