package subsonic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (c *Client) get(ctx context.Context, endpoint string, extraParams map[string]string) (*SubsonicResponse, error) {
	params := c.buildParams(extraParams)
	requestURL := fmt.Sprintf("%s/rest/%s?%s", c.BaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("unexpected status: %d, response: %s", resp.StatusCode, string(body))
	}

	var subsonicResp SubsonicResponse
	if err := json.NewDecoder(resp.Body).Decode(&subsonicResp); err != nil {
		return nil, errors.Wrapf(err, "decode %s response", endpoint)
	}

	if subsonicResp.Response.Status != "ok" {
		apiErr := subsonicResp.Response.Error
		if apiErr == nil {
			apiErr = &APIError{Message: "status " + subsonicResp.Response.Status}
		}
		c.logger.Warn("request failed",
			zap.String("endpoint", endpoint),
			zap.Int("code", apiErr.Code),
			zap.String("message", apiErr.Message))
		return nil, errors.WithStack(apiErr)
	}
	return &subsonicResp, nil
}

// Ping checks connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, "ping.view", nil)
	if err != nil {
		return err
	}
	c.logger.Info("connected",
		zap.String("server", c.BaseURL),
		zap.String("version", resp.Response.Version),
		zap.String("type", resp.Response.Type))
	return nil
}

// SearchSongs runs search3 and returns one page of songs. An empty query
// lists the whole library.
func (c *Client) SearchSongs(ctx context.Context, query string, count, offset int) ([]Song, error) {
	resp, err := c.get(ctx, "search3.view", map[string]string{
		"query":       query,
		"songCount":   strconv.Itoa(count),
		"songOffset":  strconv.Itoa(offset),
		"artistCount": "0",
		"albumCount":  "0",
	})
	if err != nil {
		return nil, err
	}
	return resp.Response.SearchResult3.Songs, nil
}
