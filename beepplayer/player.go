// Package beepplayer plays streams in process with beep, without an external
// player.
package beepplayer

import (
	"io"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/player"
)

var _ player.Player = (*Player)(nil)

const sampleRate = beep.SampleRate(44100)

// Player decodes streams in process and plays them on the default
// audio device.
type Player struct {
	client *http.Client
	logger *zap.Logger

	mu       sync.Mutex
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser

	// generation identifies the current stream; callbacks from older
	// streams are dropped.
	generation *atomic.Uint64
	closed     *atomic.Bool
	events     chan player.Event
}

// New initializes the speaker. client is used to fetch streams.
func New(client *http.Client, logger *zap.Logger) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		client:     client,
		logger:     logger.Named("beep"),
		generation: atomic.NewUint64(0),
		closed:     atomic.NewBool(false),
		events:     make(chan player.Event, 1),
	}, nil
}

func (p *Player) SetSource(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.unloadLocked()

	resp, err := p.client.Get(url)
	if err != nil {
		return errors.Wrap(err, "fetch stream")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return errors.Errorf("fetch stream: unexpected status %d", resp.StatusCode)
	}

	streamer, format, err := decode(resp.Header.Get("Content-Type"), resp.Body)
	if err != nil {
		resp.Body.Close()
		return errors.Wrap(err, "decode stream")
	}

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	gen := p.generation.Inc()
	p.streamer = streamer
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(s, beep.Callback(func() { p.ended(gen, streamer) })),
		Paused:   true,
	}
	speaker.Play(p.ctrl)
	return nil
}

// decode picks a decoder from the stream's content type. Anything
// unrecognized is assumed to be mp3, which is what servers transcode to.
func decode(contentType string, body io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "audio/ogg", "application/ogg", "audio/vorbis":
		return vorbis.Decode(body)
	case "audio/wav", "audio/x-wav", "audio/wave":
		return wav.Decode(body)
	default:
		return mp3.Decode(body)
	}
}

func (p *Player) Play() error {
	return p.setPaused(false)
}

func (p *Player) Pause() error {
	return p.setPaused(true)
}

func (p *Player) setPaused(paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return errors.New("no source loaded")
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.unloadLocked()
	return nil
}

func (p *Player) Events() <-chan player.Event {
	return p.events
}

func (p *Player) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.mu.Lock()
	p.unloadLocked()
	p.mu.Unlock()
	close(p.events)
	return nil
}

// unloadLocked clears the speaker and closes the current stream.
func (p *Player) unloadLocked() {
	p.generation.Inc()
	speaker.Clear()
	if p.streamer != nil {
		if err := p.streamer.Close(); err != nil {
			p.logger.Debug("close stream", zap.Error(err))
		}
	}
	p.streamer = nil
	p.ctrl = nil
}

// ended runs on the speaker goroutine with the speaker locked, so it must
// not block or take p.mu. A stream that stopped on a decode or network
// error is reported as PlaybackError.
func (p *Player) ended(gen uint64, stream beep.Streamer) {
	if gen != p.generation.Load() || p.closed.Load() {
		return
	}
	ev := player.Event{Kind: player.TrackEnded}
	if err := stream.Err(); err != nil {
		ev = player.Event{Kind: player.PlaybackError, Err: errors.Wrap(err, "stream")}
	}
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("player event dropped, listener busy", zap.Stringer("kind", ev.Kind))
	}
}
