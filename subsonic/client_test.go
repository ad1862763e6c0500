package subsonic

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Options{
		BaseURL:    srv.URL,
		ClientID:   "navistream",
		APIVersion: "1.16.1",
		MaxBitRate: 320,
	}, nil)
	c.SetCredentials("alice", "secret", "dev42")
	return c
}

func TestClient_Ping_SendsTokenAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/ping.view", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "alice", q.Get("u"))
		assert.Equal(t, "navistream-dev42", q.Get("c"))
		assert.Equal(t, "1.16.1", q.Get("v"))
		assert.Equal(t, "json", q.Get("f"))
		want := fmt.Sprintf("%x", md5.Sum([]byte("secret"+q.Get("s"))))
		assert.Equal(t, want, q.Get("t"))
		assert.Empty(t, q.Get("p"))

		fmt.Fprint(w, `{"subsonic-response":{"status":"ok","version":"1.16.1"}}`)
	})

	require.NoError(t, c.Ping(context.Background()))
}

func TestClient_Ping_AuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`)
	})

	err := c.Ping(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 40, apiErr.Code)
	assert.True(t, apiErr.IsAuth())
}

func TestClient_HTTPStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	})

	err := c.Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_SearchSongs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/search3.view", r.URL.Path)
		q := r.URL.Query()
		assert.True(t, q.Has("query"))
		assert.Equal(t, "", q.Get("query"))
		assert.Equal(t, "2", q.Get("songCount"))
		assert.Equal(t, "4", q.Get("songOffset"))

		fmt.Fprint(w, `{"subsonic-response":{"status":"ok","searchResult3":{"song":[
			{"id":"1","title":"Help!","artist":"The Beatles","album":"Help!","displayAlbumArtist":"The Beatles","duration":138},
			{"id":"2","title":"Yesterday","artist":"The Beatles","album":"Help!"}]}}}`)
	})

	songs, err := c.SearchSongs(context.Background(), "", 2, 4)

	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "Help!", songs[0].Title)
	assert.Equal(t, 138, songs[0].Duration)
	assert.Equal(t, "The Beatles", songs[0].DisplayAlbumArtist)
}

func TestClient_SearchSongs_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"subsonic-response":`)
	})

	_, err := c.SearchSongs(context.Background(), "", 10, 0)

	assert.Error(t, err)
}

func TestClient_StreamURL(t *testing.T) {
	c := New(Options{BaseURL: "http://music.local", ClientID: "navistream", APIVersion: "1.16.1", MaxBitRate: 192}, nil)
	c.SetCredentials("bob", "pw", "")

	raw := c.StreamURL("abc")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/rest/stream.view", u.Path)
	assert.Equal(t, "abc", u.Query().Get("id"))
	assert.Equal(t, "192", u.Query().Get("maxBitRate"))
	assert.Equal(t, "navistream", u.Query().Get("c"))
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"subsonic-response":{"status":"ok"}}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Ping(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}
