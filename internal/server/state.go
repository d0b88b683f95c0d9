package server

import (
	"notcoderguy/spotify-svg/internal/playback"
	"notcoderguy/spotify-svg/internal/spotify"
)

// State is the client-facing playback state pushed over the websocket feed.
type State struct {
	Status    string         `json:"status"`
	IsPlaying bool           `json:"is_playing"`
	Item      *spotify.Track `json:"item,omitempty"`
}

// newState normalizes an upstream payload into the feed representation,
// reusing the same classification the SVG pipeline does.
func newState(payload *spotify.NowPlaying) State {
	status, track := playback.Resolve(payload)
	return State{
		Status:    status.String(),
		IsPlaying: status == playback.StatusPlaying,
		Item:      track,
	}
}
