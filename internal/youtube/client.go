// Package youtube implements a minimal YouTube Data API v3 client covering
// the two discovery paths the monitor needs: recent uploads of a channel and
// keyword search. All calls go through a shared token-bucket rate limiter.
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

	"golang.org/x/time/rate"

	"github.com/jonesrussell/vidwatch/internal/config"
	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

// videosPerHydration is the API's cap on ids per videos.list call.
const videosPerHydration = 50

// Client calls the YouTube Data API v3.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

// New builds a Client from configuration.
func New(cfg config.YouTubeConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  log,
	}
}

// ChannelVideos returns the channel's uploads published after the cutoff,
// newest first, capped at max. The channel may be given as a channel id
// (UC...) or an @handle.
func (c *Client) ChannelVideos(ctx context.Context, channel string, publishedAfter time.Time, max int) ([]*domain.Video, error) {
	uploads, err := c.uploadsPlaylist(ctx, channel)
	if err != nil {
		return nil, err
	}

	ids, err := c.playlistVideoIDs(ctx, uploads, max)
	if err != nil {
		return nil, err
	}

	videos, err := c.hydrate(ctx, ids)
	if err != nil {
		return nil, err
	}
	return filterPublishedAfter(videos, publishedAfter, max), nil
}

// Search returns videos matching the query published after the cutoff,
// newest first, capped at max.
func (c *Client) Search(ctx context.Context, query string, publishedAfter time.Time, max int) ([]*domain.Video, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("order", "relevance")
	params.Set("maxResults", strconv.Itoa(max))
	if !publishedAfter.IsZero() {
		params.Set("publishedAfter", publishedAfter.UTC().Format(time.RFC3339))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	videos, err := c.hydrate(ctx, ids)
	if err != nil {
		return nil, err
	}
	return filterPublishedAfter(videos, publishedAfter, max), nil
}

// uploadsPlaylist resolves a channel to its uploads playlist id.
func (c *Client) uploadsPlaylist(ctx context.Context, channel string) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	if strings.HasPrefix(channel, "@") {
		params.Set("forHandle", channel)
	} else {
		params.Set("id", channel)
	}

	var resp channelsResponse
	if err := c.get(ctx, "/channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("channel %s not found", channel)
	}

	uploads := resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return "", fmt.Errorf("channel %s has no uploads playlist", channel)
	}
	return uploads, nil
}

func (c *Client) playlistVideoIDs(ctx context.Context, playlistID string, max int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(clampPageSize(max)))

	var resp playlistItemsResponse
	if err := c.get(ctx, "/playlistItems", params, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails.VideoID != "" {
			ids = append(ids, item.ContentDetails.VideoID)
		}
	}
	return ids, nil
}

// hydrate fetches full snippet and statistics for the given video ids,
// preserving id order.
func (c *Client) hydrate(ctx context.Context, ids []string) ([]*domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	videos := make([]*domain.Video, 0, len(ids))
	for start := 0; start < len(ids); start += videosPerHydration {
		end := start + videosPerHydration
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("part", "snippet,statistics")
		params.Set("id", strings.Join(ids[start:end], ","))

		var resp videosResponse
		if err := c.get(ctx, "/videos", params, &resp); err != nil {
			return nil, err
		}
		for i := range resp.Items {
			videos = append(videos, resp.Items[i].toDomain())
		}
	}
	return videos, nil
}

// get performs a rate-limited GET against the API and decodes the response
// into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("call %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func filterPublishedAfter(videos []*domain.Video, cutoff time.Time, max int) []*domain.Video {
	out := make([]*domain.Video, 0, len(videos))
	for _, v := range videos {
		if !cutoff.IsZero() && v.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, v)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func clampPageSize(max int) int {
	if max <= 0 || max > videosPerHydration {
		return videosPerHydration
	}
	return max
}
