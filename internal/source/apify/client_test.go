package apify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sourceconfig "github.com/trovehq/prowler/internal/config/source"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/source"
	"github.com/trovehq/prowler/internal/source/apify"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *apify.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &sourceconfig.Config{
		Token:          "test-token",
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
		PostLimit:      20,
	}

	return apify.NewClient(cfg, logger.NewNoOp())
}

func TestFetchRecentPosts_Instagram(t *testing.T) {
	var gotPath string
	var gotInput map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotInput); err != nil {
			t.Errorf("failed to decode actor input: %v", err)
		}

		items := []map[string]any{
			{
				"id":         "123",
				"shortCode":  "CxYz",
				"caption":    "loving this Gloss Bomb",
				"displayUrl": "https://cdn.example/img.jpg",
			},
			{
				"id":        "124",
				"shortCode": "CxYa",
				"caption":   "",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	})

	posts, err := client.FetchRecentPosts(context.Background(), "hudabeauty", domain.PlatformInstagram, 20)
	if err != nil {
		t.Fatalf("FetchRecentPosts returned error: %v", err)
	}

	if !strings.Contains(gotPath, "apify~instagram-post-scraper") {
		t.Errorf("expected instagram actor in path, got %s", gotPath)
	}
	if gotInput["resultsLimit"] != float64(20) {
		t.Errorf("expected resultsLimit 20, got %v", gotInput["resultsLimit"])
	}

	if len(posts) != 1 {
		t.Fatalf("expected 1 post (captionless items dropped), got %d", len(posts))
	}
	if posts[0].Caption != "loving this Gloss Bomb" {
		t.Errorf("unexpected caption: %s", posts[0].Caption)
	}
	if posts[0].URL != "https://www.instagram.com/p/CxYz/" {
		t.Errorf("expected shortcode-expanded URL, got %s", posts[0].URL)
	}
}

func TestFetchRecentPosts_LimitEnforced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		items := make([]map[string]any, 0, 30)
		for i := range 30 {
			items = append(items, map[string]any{
				"id":      string(rune('a' + i)),
				"caption": "post caption",
				"url":     "https://www.instagram.com/p/x/",
			})
		}
		json.NewEncoder(w).Encode(items)
	})

	posts, err := client.FetchRecentPosts(context.Background(), "hudabeauty", domain.PlatformInstagram, 20)
	if err != nil {
		t.Fatalf("FetchRecentPosts returned error: %v", err)
	}
	if len(posts) != 20 {
		t.Errorf("expected posts capped at 20, got %d", len(posts))
	}
}

func TestFetchRecentPosts_TikTokFieldAliases(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		items := []map[string]any{
			{
				"id":          "v1",
				"text":        "this serum changed my skin",
				"webVideoUrl": "https://www.tiktok.com/@x/video/1",
				"coverUrl":    "https://cdn.example/cover.jpg",
			},
		}
		json.NewEncoder(w).Encode(items)
	})

	posts, err := client.FetchRecentPosts(context.Background(), "skincarebyhyram", domain.PlatformTikTok, 20)
	if err != nil {
		t.Fatalf("FetchRecentPosts returned error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Caption != "this serum changed my skin" {
		t.Errorf("expected text field mapped to caption, got %s", posts[0].Caption)
	}
	if posts[0].URL != "https://www.tiktok.com/@x/video/1" {
		t.Errorf("expected webVideoUrl mapped to URL, got %s", posts[0].URL)
	}
}

func TestFetchRecentPosts_UnsupportedPlatform(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for unsupported platform")
	})

	_, err := client.FetchRecentPosts(context.Background(), "someone", domain.Platform("myspace"), 20)
	if !errors.Is(err, source.ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestFetchRecentPosts_ActorFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"actor crashed"}`, http.StatusInternalServerError)
	})

	_, err := client.FetchRecentPosts(context.Background(), "hudabeauty", domain.PlatformInstagram, 20)
	if err == nil {
		t.Fatal("expected error for non-2xx actor response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status code in error, got %v", err)
	}
}
