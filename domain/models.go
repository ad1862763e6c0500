package domain

// Track represents one playable catalog entry. Tracks are sourced verbatim
// from the catalog and never mutated afterwards.
type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Duration    int // in seconds
}

// DisplayArtist returns the artist, falling back to the album artist.
func (t Track) DisplayArtist() string {
	if t.Artist != "" {
		return t.Artist
	}
	return t.AlbumArtist
}
