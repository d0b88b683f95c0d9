package artwork

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"notcoderguy/spotify-svg/internal/spotify"
)

// testPNG returns an encoded image split between two solid colors so k-means
// has distinct clusters to find.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if x < 30 {
				img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 30, G: 30, B: 200, A: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func trackWithArtwork(url string) *spotify.Track {
	return &spotify.Track{
		Name: "Song A",
		Album: spotify.Album{
			Images: []spotify.AlbumImage{{URL: "large"}, {URL: url}},
		},
	}
}

func TestFetcherResolve(t *testing.T) {
	imageData := testPNG(t)

	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(imageData)
	}))
	defer imageServer.Close()

	notFoundServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFoundServer.Close()

	textServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	}))
	defer textServer.Close()

	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadServer.Close()

	wantEncoded := base64.StdEncoding.EncodeToString(imageData)

	tests := []struct {
		name           string
		placeholderURL string
		track          *spotify.Track
		wantImage      string
		wantDefault    bool
	}{
		{
			name:           "album artwork fetched and encoded",
			placeholderURL: notFoundServer.URL,
			track:          trackWithArtwork(imageServer.URL),
			wantImage:      wantEncoded,
		},
		{
			name:           "nil track uses placeholder",
			placeholderURL: imageServer.URL,
			track:          nil,
			wantImage:      wantEncoded,
		},
		{
			name:           "track without images uses placeholder",
			placeholderURL: imageServer.URL,
			track:          &spotify.Track{Name: "Song A"},
			wantImage:      wantEncoded,
		},
		{
			name:           "fetch failure degrades both outputs",
			placeholderURL: notFoundServer.URL,
			track:          trackWithArtwork(notFoundServer.URL),
			wantImage:      "",
			wantDefault:    true,
		},
		{
			name:           "unreachable server degrades both outputs",
			placeholderURL: deadServer.URL,
			track:          nil,
			wantImage:      "",
			wantDefault:    true,
		},
		{
			name:           "non-image bytes keep encoding but default the palette",
			placeholderURL: notFoundServer.URL,
			track:          trackWithArtwork(textServer.URL),
			wantImage:      base64.StdEncoding.EncodeToString([]byte("definitely not an image")),
			wantDefault:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewFetcher(tt.placeholderURL)
			encoded, palette := fetcher.Resolve(context.Background(), tt.track)

			if encoded != tt.wantImage {
				t.Errorf("image = %q..., want %q...", clip(encoded), clip(tt.wantImage))
			}
			if len(palette) == 0 {
				t.Fatal("palette must never be empty")
			}
			if tt.wantDefault {
				want := DefaultPalette()
				if len(palette) != len(want) || palette[0] != want[0] || palette[1] != want[1] {
					t.Errorf("palette = %v, want default %v", palette, want)
				}
			}
		})
	}
}

func TestExtractPalette(t *testing.T) {
	palette, err := ExtractPalette(testPNG(t), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(palette) == 0 {
		t.Fatal("expected at least one color")
	}
}

func TestExtractPaletteRejectsGarbage(t *testing.T) {
	if _, err := ExtractPalette([]byte("garbage"), 2); err == nil {
		t.Fatal("expected error for undecodable bytes, got nil")
	}
}

func TestRGBCSS(t *testing.T) {
	c := RGB{R: 50, G: 100, B: 150}
	if got, want := c.CSS(), "rgb(50,100,150)"; got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

func clip(s string) string {
	if len(s) > 24 {
		return s[:24]
	}
	return s
}
