package playback

import (
	"strings"

	"notcoderguy/spotify-svg/internal/spotify"
)

// Fallback values used whenever the corresponding payload field is absent.
const (
	UnknownArtist = "Unknown Artist"
	UnknownSong   = "Unknown Song"
	FallbackURI   = "#"
)

// Fields is the normalized set of display strings for a track. Every field
// always has a value.
type Fields struct {
	ArtistName string
	SongName   string
	SongURI    string
	ArtistURI  string
}

// ExtractFields derives display fields from a track, falling back per field.
// It never fails: a nil track yields all fallback values. Text fields have
// ampersands escaped so they can be inserted into SVG markup directly.
func ExtractFields(track *spotify.Track) Fields {
	fields := Fields{
		ArtistName: UnknownArtist,
		SongName:   UnknownSong,
		SongURI:    FallbackURI,
		ArtistURI:  FallbackURI,
	}
	if track == nil {
		return fields
	}

	if track.Name != "" {
		fields.SongName = escapeMarkup(track.Name)
	}
	if uri := track.ExternalURLs["spotify"]; uri != "" {
		fields.SongURI = uri
	}
	if len(track.Artists) > 0 {
		first := track.Artists[0]
		if first.Name != "" {
			fields.ArtistName = escapeMarkup(first.Name)
		}
		if uri := first.ExternalURLs["spotify"]; uri != "" {
			fields.ArtistURI = uri
		}
	}
	return fields
}

// escapeMarkup escapes literal ampersands so track names like "Me & You"
// do not produce malformed XML.
func escapeMarkup(s string) string {
	return strings.ReplaceAll(s, "&", "&amp;")
}
