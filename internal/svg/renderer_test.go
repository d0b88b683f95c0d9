package svg

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"notcoderguy/spotify-svg/internal/artwork"
	"notcoderguy/spotify-svg/internal/playback"
)

const shippedTemplatesDir = "../../templates"

func fullModel() playback.Model {
	return playback.NewModel(
		playback.StatusPlaying,
		playback.Fields{
			ArtistName: "Artist &amp; Friends",
			SongName:   "Song A",
			SongURI:    "https://open.spotify.com/track/t1",
			ArtistURI:  "https://open.spotify.com/artist/a1",
		},
		"aGVsbG8=",
		[]artwork.RGB{{R: 10, G: 20, B: 30}, {R: 40, G: 50, B: 60}},
		"181414",
		"ff0000",
	)
}

// Every template registered in templates.json must execute cleanly against a
// full model; a substitution failure here is a shipped bug.
func TestRendererRendersEveryShippedTemplate(t *testing.T) {
	renderer, err := NewRenderer(shippedTemplatesDir)
	if err != nil {
		t.Fatalf("failed to parse shipped templates: %v", err)
	}

	data, err := os.ReadFile(shippedTemplatesDir + "/templates.json")
	if err != nil {
		t.Fatalf("failed to read shipped registry: %v", err)
	}
	var reg struct {
		Templates map[string]string `json:"templates"`
	}
	if err := json.Unmarshal(data, &reg); err != nil {
		t.Fatalf("failed to parse shipped registry: %v", err)
	}
	if len(reg.Templates) == 0 {
		t.Fatal("shipped registry lists no templates")
	}

	for theme, templateID := range reg.Templates {
		t.Run(theme, func(t *testing.T) {
			markup, err := renderer.Render(fullModel(), templateID)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			for _, want := range []string{
				"<svg",
				"Song A",
				"Artist &amp; Friends",
				"#181414",
				"#ff0000",
				"rgb(10,20,30)",
			} {
				if !strings.Contains(markup, want) {
					t.Errorf("markup missing %q", want)
				}
			}
		})
	}
}

func TestRendererOfflineModelOmitsImage(t *testing.T) {
	renderer, err := NewRenderer(shippedTemplatesDir)
	if err != nil {
		t.Fatalf("failed to parse shipped templates: %v", err)
	}

	model := playback.NewModel(playback.StatusOffline, playback.ExtractFields(nil), "", nil, "181414", "181414")
	markup, err := renderer.Render(model, FallbackTemplate)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.Contains(markup, "base64,") {
		t.Error("offline card should not embed image data")
	}
	if !strings.Contains(markup, playback.UnknownSong) {
		t.Errorf("markup missing %q", playback.UnknownSong)
	}
	if !strings.Contains(markup, playback.StatusOffline.Label()) {
		t.Errorf("markup missing status label %q", playback.StatusOffline.Label())
	}
}

func TestRendererUnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer(shippedTemplatesDir)
	if err != nil {
		t.Fatalf("failed to parse shipped templates: %v", err)
	}
	if _, err := renderer.Render(fullModel(), "no-such-template.svg.tmpl"); err == nil {
		t.Fatal("expected error for unknown template, got nil")
	}
}
