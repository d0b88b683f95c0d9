package spotify

import "encoding/json"

// Artist represents an artist entry in the now-playing payload.
type Artist struct {
	Name         string            `json:"name"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// AlbumImage is a single artwork entry. Index 1 of an album's image list is
// the medium resolution by Spotify convention.
type AlbumImage struct {
	URL string `json:"url"`
}

// Album carries the artwork list for a track.
type Album struct {
	Images []AlbumImage `json:"images"`
}

// Track represents the track object from the now-playing payload.
type Track struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []Artist          `json:"artists"`
	Album        Album             `json:"album"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// NowPlaying represents the now-playing object from the upstream API.
// The Item field is a pointer to handle cases where nothing is playing
// (item is null) or the item is structurally unusable.
type NowPlaying struct {
	IsPlaying bool   `json:"is_playing"`
	Item      *Track `json:"item"`
}

// UnmarshalJSON decodes the payload tolerantly. The upstream document is not
// schema-guaranteed: an item that is missing, null, or not a well-formed
// track object decodes to a nil Item instead of failing the whole payload.
func (n *NowPlaying) UnmarshalJSON(data []byte) error {
	var wire struct {
		IsPlaying bool            `json:"is_playing"`
		Item      json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	n.IsPlaying = wire.IsPlaying
	n.Item = nil

	if len(wire.Item) == 0 || string(wire.Item) == "null" {
		return nil
	}

	var track Track
	if err := json.Unmarshal(wire.Item, &track); err != nil {
		// Keep the payload usable, only the item is discarded.
		return nil
	}
	n.Item = &track
	return nil
}
