// Package endfile decides which mpv END_FILE events mean a track really
// finished. It has no cgo dependency so the bookkeeping can be tested
// without libmpv.
package endfile

import (
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/yhkl-dev/navistream/player"
)

// Reason values of mpv_event_end_file.
const (
	ReasonEOF      int32 = 0
	ReasonStop     int32 = 2
	ReasonQuit     int32 = 3
	ReasonError    int32 = 4
	ReasonRedirect int32 = 5
)

// Tracker remembers whether the next END_FILE was caused by a load or stop
// issued by this program.
type Tracker struct {
	replacing *atomic.Bool
	loaded    *atomic.Bool
}

// NewTracker returns a tracker with nothing loaded.
func NewTracker() *Tracker {
	return &Tracker{
		replacing: atomic.NewBool(false),
		loaded:    atomic.NewBool(false),
	}
}

// BeginLoad is called before a loadfile replace. Replacing a loaded file
// makes mpv end it, and that end must not count.
func (t *Tracker) BeginLoad() {
	if t.loaded.Load() {
		t.replacing.Store(true)
	}
}

// LoadFailed undoes BeginLoad when mpv rejected the command.
func (t *Tracker) LoadFailed() {
	t.replacing.Store(false)
}

// Loaded records that a file is now playing or paused.
func (t *Tracker) Loaded() {
	t.loaded.Store(true)
}

// Stopping is called before a stop command.
func (t *Tracker) Stopping() {
	if t.loaded.Swap(false) {
		t.replacing.Store(true)
	}
}

// Event consumes one END_FILE. It returns false for ends caused by
// BeginLoad or Stopping. A stream that failed becomes PlaybackError.
func (t *Tracker) Event(reason, code int32) (player.Event, bool) {
	if t.replacing.Swap(false) {
		return player.Event{}, false
	}
	t.loaded.Store(false)
	if reason == ReasonError {
		return player.Event{
			Kind: player.PlaybackError,
			Err:  errors.Errorf("stream failed (mpv error %d)", code),
		}, true
	}
	return player.Event{Kind: player.TrackEnded}, true
}
