package library

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/subsonic"
)

func newTestLibrary(t *testing.T, pageSize int, handler http.HandlerFunc) *SubsonicLibrary {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := subsonic.New(subsonic.Options{BaseURL: srv.URL, ClientID: "navistream", APIVersion: "1.16.1"}, zap.NewNop())
	return NewSubsonicLibrary(client, pageSize, zap.NewNop())
}

func songsPage(offset, count int) string {
	songs := make([]string, count)
	for i := range songs {
		id := offset + i
		songs[i] = fmt.Sprintf(`{"id":"%d","title":"Song %d","artist":"Artist","album":"Album"}`, id, id)
	}
	return `{"subsonic-response":{"status":"ok","searchResult3":{"song":[` + strings.Join(songs, ",") + `]}}}`
}

func TestSubsonicLibrary_AllTracks_Pages(t *testing.T) {
	var requests atomic.Int32
	lib := newTestLibrary(t, 2, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		offset, _ := strconv.Atoi(r.URL.Query().Get("songOffset"))
		count := 2
		if offset >= 4 {
			count = 1
		}
		fmt.Fprint(w, songsPage(offset, count))
	})

	tracks, err := lib.AllTracks(context.Background())

	require.NoError(t, err)
	require.Len(t, tracks, 5)
	assert.Equal(t, int32(3), requests.Load())
	assert.Equal(t, "0", tracks[0].ID)
	assert.Equal(t, "Song 4", tracks[4].Title)
	assert.Equal(t, "Artist", tracks[4].AlbumArtist)
}

func TestSubsonicLibrary_AllTracks_EmptyCatalog(t *testing.T) {
	lib := newTestLibrary(t, 10, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"subsonic-response":{"status":"ok","searchResult3":{}}}`)
	})

	tracks, err := lib.AllTracks(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, tracks)
	assert.Empty(t, tracks)
}

func TestSubsonicLibrary_AllTracks_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			kind: domain.ErrCatalogFetch,
		},
		{
			name: "api error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":0,"message":"boom"}}}`)
			},
			kind: domain.ErrCatalogFetch,
		},
		{
			name: "session expired",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`)
			},
			kind: domain.ErrAuthentication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := newTestLibrary(t, 10, tt.handler)

			tracks, err := lib.AllTracks(context.Background())

			assert.Nil(t, tracks)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestSubsonicLibrary_Login(t *testing.T) {
	lib := newTestLibrary(t, 10, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("u") != "alice" {
			fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`)
			return
		}
		assert.Equal(t, "navistream-dev1", r.URL.Query().Get("c"))
		fmt.Fprint(w, `{"subsonic-response":{"status":"ok"}}`)
	})
	ctx := context.Background()

	err := lib.Login(ctx, "mallory", "pw", "dev1")
	assert.True(t, errors.Is(err, domain.ErrAuthentication))

	assert.NoError(t, lib.Login(ctx, "alice", "pw", "dev1"))
}

func TestSubsonicLibrary_Login_NetworkErrorIsNotAuth(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := subsonic.New(subsonic.Options{BaseURL: srv.URL}, zap.NewNop())
	lib := NewSubsonicLibrary(client, 0, nil)

	err := lib.Login(context.Background(), "alice", "pw", "dev1")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrAuthentication))
}

func TestSubsonicLibrary_StreamURL(t *testing.T) {
	client := subsonic.New(subsonic.Options{BaseURL: "http://music.local", ClientID: "navistream"}, zap.NewNop())
	lib := NewSubsonicLibrary(client, 0, nil)
	ctx := context.Background()

	url, err := lib.StreamURL(ctx, "42")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://music.local/rest/stream.view?"))
	assert.Contains(t, url, "id=42")

	_, err = lib.StreamURL(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrStreamResolution))
}
