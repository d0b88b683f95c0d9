package playback

import "notcoderguy/spotify-svg/internal/spotify"

// Status classifies what the upstream payload says about the account.
type Status int

const (
	// StatusOffline means no usable payload was available at all.
	StatusOffline Status = iota
	// StatusRecent means the account is not playing right now; the item, if
	// usable, is the most recently played track.
	StatusRecent
	// StatusPlaying means a track is actively playing and its item is usable.
	StatusPlaying
)

// String returns the lowercase keyword used in templates and the feed.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusRecent:
		return "recent"
	default:
		return "offline"
	}
}

// Label returns the human-readable caption shown on the rendered card.
func (s Status) Label() string {
	switch s {
	case StatusPlaying:
		return "Now playing"
	case StatusRecent:
		return "Recently played"
	default:
		return "Offline"
	}
}

// Resolve classifies an upstream payload and returns the track to display,
// if any. It is total over every payload shape:
//
//   - a nil payload (fetch failed) is Offline with no track;
//   - a payload that is not playing is Recent, keeping that framing even when
//     the item is missing or unusable;
//   - a playing payload with a usable item is Playing;
//   - a playing payload without a usable item is downgraded to Offline, since
//     an active-but-itemless document is untrustworthy rather than partially
//     playing.
func Resolve(payload *spotify.NowPlaying) (Status, *spotify.Track) {
	if payload == nil {
		return StatusOffline, nil
	}
	if !payload.IsPlaying {
		return StatusRecent, payload.Item
	}
	if payload.Item == nil {
		return StatusOffline, nil
	}
	return StatusPlaying, payload.Item
}
