package artwork

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"

	"notcoderguy/spotify-svg/internal/spotify"
)

const (
	fetchTimeout = 5 * time.Second
	maxImageSize = 10 * 1024 * 1024 // 10 MB

	// paletteSize is the number of dominant colors requested per artwork.
	paletteSize = 2

	// thumbnailSize bounds the image fed into k-means extraction.
	thumbnailSize = 200
)

// RGB is a single palette color.
type RGB struct {
	R, G, B uint32
}

// CSS renders the color as a CSS rgb() literal for use in SVG attributes.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// DefaultPalette returns the mid-grey pair used whenever extraction fails.
func DefaultPalette() []RGB {
	return []RGB{{R: 50, G: 50, B: 50}, {R: 100, G: 100, B: 100}}
}

// Fetcher retrieves album artwork and derives its dominant colors. It is
// safe for concurrent use.
type Fetcher struct {
	client         *http.Client
	placeholderURL string
}

// NewFetcher creates a Fetcher that falls back to the given placeholder
// image whenever a track has no usable artwork.
func NewFetcher(placeholderURL string) *Fetcher {
	return &Fetcher{
		client:         &http.Client{Timeout: fetchTimeout},
		placeholderURL: placeholderURL,
	}
}

// Resolve returns the base64-encoded artwork bytes and a palette for the
// track. It never fails: a fetch failure yields an empty image string, an
// extraction failure yields the default palette, and the two degradations
// are independent of each other.
func (f *Fetcher) Resolve(ctx context.Context, track *spotify.Track) (string, []RGB) {
	url := f.artworkURL(track)

	data, err := f.fetch(ctx, url)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Warn("artwork fetch failed")
		return "", DefaultPalette()
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	palette, err := ExtractPalette(data, paletteSize)
	if err != nil {
		logrus.WithError(err).Warn("palette extraction failed, using default palette")
		palette = DefaultPalette()
	}

	return encoded, palette
}

// artworkURL picks the medium-resolution album image when present and the
// placeholder otherwise.
func (f *Fetcher) artworkURL(track *spotify.Track) string {
	if track != nil && len(track.Album.Images) > 1 && track.Album.Images[1].URL != "" {
		return track.Album.Images[1].URL
	}
	return f.placeholderURL
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create artwork request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artwork: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close artwork response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("read artwork body: %w", err)
	}
	return data, nil
}

// ExtractPalette returns up to count dominant colors from the encoded image.
func ExtractPalette(data []byte, count int) ([]RGB, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}

	// Downscale before clustering so extraction cost stays bounded even for
	// full-size artwork.
	img = resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.Lanczos3)

	items, err := prominentcolor.KmeansWithAll(count, img, prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, nil)
	if err != nil {
		return nil, fmt.Errorf("extract dominant colors: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("no dominant colors found")
	}

	palette := make([]RGB, 0, len(items))
	for _, item := range items {
		palette = append(palette, RGB{R: item.Color.R, G: item.Color.G, B: item.Color.B})
	}
	return palette, nil
}
