// Package player defines the playback port implemented by the mpvplayer and
// beepplayer backends.
package player

//go:generate mockgen -destination=mocks/mock_player.go -package=mocks github.com/yhkl-dev/navistream/player Player

// EventKind identifies a player event.
type EventKind int

const (
	// TrackEnded reports that the loaded stream played to its end.
	TrackEnded EventKind = iota
	// PlaybackError reports a stream that stopped on an error.
	PlaybackError
)

func (k EventKind) String() string {
	if k == PlaybackError {
		return "playback-error"
	}
	return "track-ended"
}

// Event is sent by a backend on its Events channel.
type Event struct {
	Kind EventKind
	Err  error
}

// Player is the playback port. Backends are driven by software intent only;
// nothing here reports whether audio is actually audible.
type Player interface {
	// SetSource loads url paused, replacing whatever was loaded.
	SetSource(url string) error

	// Play starts or resumes the loaded source.
	Play() error

	// Pause pauses the loaded source.
	Pause() error

	// Stop unloads the current source.
	Stop() error

	// Events delivers TrackEnded for streams that finish on their own and
	// PlaybackError for streams that fail. Replaced or stopped streams do
	// not report. The channel is closed by Close.
	Events() <-chan Event

	// Close releases the backend.
	Close() error
}

// Backend names accepted by player.backend.
const (
	BackendMPV  = "mpv"
	BackendBeep = "beep"
)
