package subsonic

import (
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type Client struct {
	BaseURL    string
	ClientID   string
	APIVersion string
	MaxBitRate int
	HttpClient *http.Client

	mu       sync.RWMutex
	username string
	password string
	deviceID string

	logger *zap.Logger
}

type SubsonicResponse struct {
	Response struct {
		Status        string    `json:"status"`
		Version       string    `json:"version"`
		Type          string    `json:"type"`
		ServerVersion string    `json:"serverVersion"`
		OpenSubsonic  bool      `json:"openSubsonic"`
		Error         *APIError `json:"error,omitempty"`
		SearchResult3 struct {
			Songs []Song `json:"song"`
		} `json:"searchResult3"`
	} `json:"subsonic-response"`
}

type Song struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Album              string `json:"album"`
	Artist             string `json:"artist"`
	DisplayAlbumArtist string `json:"displayAlbumArtist"`
	Duration           int    `json:"duration"` // in seconds
	Track              int    `json:"track"`
	AlbumID            string `json:"albumId"`
	ArtistID           string `json:"artistId"`
	IsVideo            bool   `json:"isVideo"`
}

// APIError is a failed Subsonic response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("subsonic error %d: %s", e.Code, e.Message)
}

// IsAuth reports whether the server rejected the credentials: wrong
// username or password (40), token auth unsupported (41, 42), or the user
// is not authorized (43, 44).
func (e *APIError) IsAuth() bool {
	return e.Code >= 40 && e.Code <= 44
}
