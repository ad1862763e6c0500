package library

import (
	"context"

	"github.com/yhkl-dev/navistream/domain"
)

//go:generate mockgen -destination=mocks/mock_library.go -package=mocks github.com/yhkl-dev/navistream/library Library

// Library is the catalog gateway. Playlists would be added here.
type Library interface {
	// Login authenticates and registers deviceID as a player. Rejected
	// credentials match domain.ErrAuthentication.
	Login(ctx context.Context, username, password, deviceID string) error
	// AllTracks fetches the full catalog. Failures match
	// domain.ErrCatalogFetch.
	AllTracks(ctx context.Context) ([]domain.Track, error)
	// StreamURL resolves a playable URL. Failures match
	// domain.ErrStreamResolution.
	StreamURL(ctx context.Context, trackID string) (string, error)
}
