package beepplayer

import (
	"io"
	"strings"
	"testing"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/player"
)

func TestDecode_RejectsGarbage(t *testing.T) {
	for _, contentType := range []string{"audio/mpeg", "audio/ogg; codecs=vorbis", "audio/wav", ""} {
		t.Run(contentType, func(t *testing.T) {
			body := io.NopCloser(strings.NewReader("definitely not audio"))

			_, _, err := decode(contentType, body)

			assert.Error(t, err)
		})
	}
}

// failedStreamer is a stream that stopped on err.
type failedStreamer struct {
	err error
}

func (f failedStreamer) Stream([][2]float64) (int, bool) { return 0, false }
func (f failedStreamer) Err() error                     { return f.err }

// newTestPlayer builds a Player without touching the speaker.
func newTestPlayer(gen uint64) *Player {
	return &Player{
		logger:     zap.NewNop(),
		generation: atomic.NewUint64(gen),
		closed:     atomic.NewBool(false),
		events:     make(chan player.Event, 1),
	}
}

func TestPlayer_Ended_CurrentStream(t *testing.T) {
	p := newTestPlayer(2)

	p.ended(2, beep.Silence(0))

	require.Len(t, p.events, 1)
	ev := <-p.events
	assert.Equal(t, player.TrackEnded, ev.Kind)
	assert.NoError(t, ev.Err)
}

func TestPlayer_Ended_ReplacedStreamIsDropped(t *testing.T) {
	p := newTestPlayer(2)

	p.ended(1, beep.Silence(0))

	assert.Empty(t, p.events)
}

func TestPlayer_Ended_AfterClose(t *testing.T) {
	p := newTestPlayer(1)
	p.closed.Store(true)

	p.ended(1, beep.Silence(0))

	assert.Empty(t, p.events)
}

func TestPlayer_Ended_StreamError(t *testing.T) {
	p := newTestPlayer(3)

	p.ended(3, failedStreamer{err: errors.New("connection reset")})

	require.Len(t, p.events, 1)
	ev := <-p.events
	assert.Equal(t, player.PlaybackError, ev.Kind)
	assert.ErrorContains(t, ev.Err, "connection reset")
}

func TestPlayer_Ended_NeverBlocks(t *testing.T) {
	p := newTestPlayer(1)

	p.ended(1, beep.Silence(0))
	p.ended(1, beep.Silence(0))

	assert.Len(t, p.events, 1)
}
