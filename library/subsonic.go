package library

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/subsonic"
)

const defaultPageSize = 500

// SubsonicLibrary implements Library against a Subsonic server.
type SubsonicLibrary struct {
	client   *subsonic.Client
	pageSize int
	logger   *zap.Logger
}

// NewSubsonicLibrary fetches the catalog pageSize songs at a time; a
// non-positive pageSize selects the default.
func NewSubsonicLibrary(client *subsonic.Client, pageSize int, logger *zap.Logger) *SubsonicLibrary {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubsonicLibrary{
		client:   client,
		pageSize: pageSize,
		logger:   logger.Named("library"),
	}
}

func (s *SubsonicLibrary) Login(ctx context.Context, username, password, deviceID string) error {
	s.client.SetCredentials(username, password, deviceID)
	if err := s.client.Ping(ctx); err != nil {
		if isAuthError(err) {
			return domain.Wrap(domain.ErrAuthentication, err)
		}
		return errors.Wrap(err, "ping server")
	}
	return nil
}

// AllTracks pages through search3 with an empty query until the server
// returns a short page.
func (s *SubsonicLibrary) AllTracks(ctx context.Context) ([]domain.Track, error) {
	var tracks []domain.Track
	for offset := 0; ; offset += s.pageSize {
		songs, err := s.client.SearchSongs(ctx, "", s.pageSize, offset)
		if err != nil {
			if isAuthError(err) {
				return nil, domain.Wrap(domain.ErrAuthentication, err)
			}
			return nil, domain.Wrap(domain.ErrCatalogFetch, err)
		}
		for _, song := range songs {
			if song.IsVideo {
				continue
			}
			tracks = append(tracks, convertToTrack(song))
		}
		if len(songs) < s.pageSize {
			break
		}
	}
	s.logger.Debug("catalog fetched", zap.Int("tracks", len(tracks)))
	if tracks == nil {
		tracks = []domain.Track{}
	}
	return tracks, nil
}

func (s *SubsonicLibrary) StreamURL(ctx context.Context, trackID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.Wrap(domain.ErrStreamResolution, err)
	}
	if trackID == "" {
		return "", domain.Wrap(domain.ErrStreamResolution, errors.New("empty track id"))
	}
	return s.client.StreamURL(trackID), nil
}

func isAuthError(err error) bool {
	var apiErr *subsonic.APIError
	return errors.As(err, &apiErr) && apiErr.IsAuth()
}

func convertToTrack(song subsonic.Song) domain.Track {
	albumArtist := song.DisplayAlbumArtist
	if albumArtist == "" {
		albumArtist = song.Artist
	}
	return domain.Track{
		ID:          song.ID,
		Title:       song.Title,
		Artist:      song.Artist,
		Album:       song.Album,
		AlbumArtist: albumArtist,
		Duration:    song.Duration,
	}
}
