package playback

import "notcoderguy/spotify-svg/internal/artwork"

// Model is the fully-normalized record consumed by the renderer. Every field
// is populated under all input conditions; missing upstream data shows up as
// a fallback value, never as a missing field.
type Model struct {
	Status          Status
	ArtistName      string
	SongName        string
	SongURI         string
	ArtistURI       string
	ImageBase64     string
	Palette         []artwork.RGB
	BackgroundColor string
	BorderColor     string
}

// PrimaryColor is the first palette color as a CSS literal.
func (m Model) PrimaryColor() string {
	if len(m.Palette) == 0 {
		return artwork.DefaultPalette()[0].CSS()
	}
	return m.Palette[0].CSS()
}

// SecondaryColor is the last palette color as a CSS literal. It equals the
// primary color when the palette holds a single entry.
func (m Model) SecondaryColor() string {
	if len(m.Palette) == 0 {
		return artwork.DefaultPalette()[1].CSS()
	}
	return m.Palette[len(m.Palette)-1].CSS()
}

// NewModel assembles a render-ready model from the resolved parts.
func NewModel(status Status, fields Fields, imageBase64 string, palette []artwork.RGB, backgroundColor, borderColor string) Model {
	if len(palette) == 0 {
		palette = artwork.DefaultPalette()
	}
	return Model{
		Status:          status,
		ArtistName:      fields.ArtistName,
		SongName:        fields.SongName,
		SongURI:         fields.SongURI,
		ArtistURI:       fields.ArtistURI,
		ImageBase64:     imageBase64,
		Palette:         palette,
		BackgroundColor: backgroundColor,
		BorderColor:     borderColor,
	}
}
