package library

import (
	"fmt"
	"io"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/textnorm"
)

// Album is one album of an Artist in a catalog tree.
type Album struct {
	Name   string
	Titles []string
}

// Artist groups albums under one album artist.
type Artist struct {
	Name   string
	Albums []*Album
}

// Tree groups tracks by album artist, then album, keeping the order in
// which each artist, album and title first appears.
func Tree(tracks []domain.Track) []*Artist {
	var artists []*Artist
	byArtist := make(map[string]*Artist)
	byAlbum := make(map[[2]string]*Album)

	for _, t := range tracks {
		artist, ok := byArtist[t.AlbumArtist]
		if !ok {
			artist = &Artist{Name: t.AlbumArtist}
			byArtist[t.AlbumArtist] = artist
			artists = append(artists, artist)
		}
		key := [2]string{t.AlbumArtist, t.Album}
		album, ok := byAlbum[key]
		if !ok {
			album = &Album{Name: t.Album}
			byAlbum[key] = album
			artist.Albums = append(artist.Albums, album)
		}
		album.Titles = append(album.Titles, t.Title)
	}
	return artists
}

// PrintTree writes the catalog tree with accents stripped.
func PrintTree(w io.Writer, tracks []domain.Track) error {
	for _, artist := range Tree(tracks) {
		if _, err := fmt.Fprintln(w, orUnknown(artist.Name, "Unknown Artist")); err != nil {
			return err
		}
		for _, album := range artist.Albums {
			if _, err := fmt.Fprintln(w, "    "+orUnknown(album.Name, "Unknown Album")); err != nil {
				return err
			}
			for _, title := range album.Titles {
				if _, err := fmt.Fprintln(w, "        "+orUnknown(title, "Unknown Track")); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func orUnknown(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return textnorm.StripAccents(s)
}
