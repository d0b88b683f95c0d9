package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"notcoderguy/spotify-svg/internal/artwork"
	"notcoderguy/spotify-svg/internal/playback"
	"notcoderguy/spotify-svg/internal/spotify"
	"notcoderguy/spotify-svg/internal/svg"
)

const (
	defaultBackgroundColor = "181414"
	defaultBorderColor     = "181414"

	contentTypeSVG = "image/svg+xml"
	cacheControl   = "s-maxage=1, stale-while-revalidate"
)

// SVGHandler serves the rendered now-playing card. Every upstream failure
// degrades to a placeholder value, so the response is always 200 with valid
// markup; only a template execution bug produces an error response.
type SVGHandler struct {
	client   *spotify.Client
	artwork  *artwork.Fetcher
	registry *svg.Registry
	renderer *svg.Renderer
}

// NewSVGHandler wires the rendering pipeline together.
func NewSVGHandler(client *spotify.Client, fetcher *artwork.Fetcher, registry *svg.Registry, renderer *svg.Renderer) *SVGHandler {
	return &SVGHandler{
		client:   client,
		artwork:  fetcher,
		registry: registry,
		renderer: renderer,
	}
}

func (h *SVGHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	background := hexColorOrDefault(r.URL.Query().Get("background_color"), defaultBackgroundColor)
	border := hexColorOrDefault(r.URL.Query().Get("border_color"), defaultBorderColor)
	theme := r.URL.Query().Get("theme")

	payload, err := h.client.NowPlaying(r.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to fetch now-playing payload")
		payload = nil
	}

	status, track := playback.Resolve(payload)
	fields := playback.ExtractFields(track)
	image, palette := h.artwork.Resolve(r.Context(), track)

	model := playback.NewModel(status, fields, image, palette, background, border)

	markup, err := h.renderer.Render(model, h.registry.ResolveTemplate(theme))
	if err != nil {
		// A substitution failure is a programming error, not a degradable
		// condition. Fail loudly so the tests catch it.
		logrus.WithError(err).Error("svg template execution failed")
		http.Error(w, "template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeSVG)
	w.Header().Set("Cache-Control", cacheControl)
	if _, err := w.Write([]byte(markup)); err != nil {
		logrus.WithError(err).Warn("failed to write svg response")
	}
}

// hexColorOrDefault keeps query-supplied colors from breaking out of the SVG
// attribute they are substituted into.
func hexColorOrDefault(value, fallback string) string {
	if len(value) != 3 && len(value) != 6 && len(value) != 8 {
		return fallback
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return fallback
		}
	}
	return value
}
