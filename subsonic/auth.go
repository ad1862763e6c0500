package subsonic

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	ClientID   string
	APIVersion string
	MaxBitRate int
	Timeout    time.Duration
}

// New creates a client without credentials; call SetCredentials before any
// request.
func New(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:    opts.BaseURL,
		ClientID:   opts.ClientID,
		APIVersion: opts.APIVersion,
		MaxBitRate: opts.MaxBitRate,
		HttpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger.Named("subsonic"),
	}
}

// SetCredentials sets the user and the device id reported as part of the
// client name, so the server registers this device as a player.
func (c *Client) SetCredentials(username, password, deviceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
	c.password = password
	c.deviceID = deviceID
}

func (c *Client) authToken(password string) (string, string) {
	salt := randSeq(8)
	token := fmt.Sprintf("%x", md5.Sum([]byte(password+salt)))

	return token, salt
}

func (c *Client) clientName() string {
	if c.deviceID == "" {
		return c.ClientID
	}
	return c.ClientID + "-" + c.deviceID
}

func (c *Client) buildParams(extraParams map[string]string) url.Values {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token, salt := c.authToken(c.password)
	params := url.Values{}
	params.Add("u", c.username)
	params.Add("t", token)
	params.Add("s", salt)
	params.Add("v", c.APIVersion)
	params.Add("c", c.clientName())
	params.Add("f", "json")

	for k, v := range extraParams {
		params.Add(k, v)
	}
	return params
}

// StreamURL returns the authenticated stream URL for a song.
func (c *Client) StreamURL(songID string) string {
	extra := map[string]string{"id": songID}
	if c.MaxBitRate > 0 {
		extra["maxBitRate"] = strconv.Itoa(c.MaxBitRate)
	}
	params := c.buildParams(extra)
	return fmt.Sprintf("%s/rest/stream.view?%s", c.BaseURL, params.Encode())
}
