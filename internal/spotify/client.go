package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	tokenURL            = "https://accounts.spotify.com/api/token"
	currentlyPlayingURL = "https://api.spotify.com/v1/me/player/currently-playing"

	requestTimeout = 10 * time.Second
)

// Client fetches the now-playing payload from an upstream endpoint. It is
// safe for concurrent use.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a client that polls a public now-playing proxy endpoint
// without authentication.
func NewClient(nowPlayingURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		url:        nowPlayingURL,
	}
}

// NewAuthClient creates a client that talks to the Spotify Web API directly
// using the refresh token flow.
func NewAuthClient(ctx context.Context, clientID, clientSecret, refreshToken string) *Client {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: tokenURL,
		},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
	}

	// The TokenSource is concurrency-safe and handles token refreshes
	// automatically.
	httpClient := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))
	httpClient.Timeout = requestTimeout

	return &Client{
		httpClient: httpClient,
		url:        currentlyPlayingURL,
	}
}

// NowPlaying fetches the current payload. Any non-success response or decode
// failure yields an error; callers treat that as "payload absent" rather than
// a distinct failure mode.
func (c *Client) NowPlaying(ctx context.Context) (*NowPlaying, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close now-playing response body")
		}
	}()

	// When nothing is playing, the Spotify API returns 204 No Content.
	// Normalize this to a consistent struct response for the caller.
	if resp.StatusCode == http.StatusNoContent {
		return &NowPlaying{IsPlaying: false, Item: nil}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("now-playing request returned status %d", resp.StatusCode)
	}

	var nowPlaying NowPlaying
	if err := json.NewDecoder(resp.Body).Decode(&nowPlaying); err != nil {
		return nil, fmt.Errorf("decode now-playing payload: %w", err)
	}

	return &nowPlaying, nil
}
