// Package mpvplayer drives libmpv as the default playback backend.
package mpvplayer

import (
	"unsafe"

	"github.com/wildeyedskies/go-mpv/mpv"

	"github.com/yhkl-dev/navistream/mpvplayer/endfile"
	"github.com/yhkl-dev/navistream/player"
)

// Mpvplayer wraps an mpv handle and tracks which END_FILE events were
// caused by this program rather than a stream running out.
type Mpvplayer struct {
	*mpv.Mpv
	ends *endfile.Tracker
}

// New wraps an initialized handle with nothing loaded.
func New(m *mpv.Mpv) *Mpvplayer {
	return &Mpvplayer{
		Mpv:  m,
		ends: endfile.NewTracker(),
	}
}

// Load replaces the current file with playURL and leaves it paused.
func (m *Mpvplayer) Load(playURL string) error {
	if err := m.SetProperty("pause", mpv.FORMAT_FLAG, true); err != nil {
		return err
	}
	m.ends.BeginLoad()
	if err := m.Command([]string{"loadfile", playURL, "replace"}); err != nil {
		m.ends.LoadFailed()
		return err
	}
	m.ends.Loaded()
	return nil
}

func (m *Mpvplayer) SetPaused(paused bool) error {
	return m.SetProperty("pause", mpv.FORMAT_FLAG, paused)
}

func (m *Mpvplayer) Stop() error {
	m.ends.Stopping()
	return m.Command([]string{"stop"})
}

// endFile mirrors the leading fields of mpv_event_end_file.
type endFile struct {
	Reason int32
	Error  int32
}

// EndFileEvent converts an END_FILE event into a player event. It returns
// false when the end was caused by Load or Stop.
func (m *Mpvplayer) EndFileEvent(e *mpv.Event) (player.Event, bool) {
	reason, code := endfile.ReasonEOF, int32(0)
	if e.Data != nil {
		ef := (*endFile)(unsafe.Pointer(e.Data))
		reason, code = ef.Reason, ef.Error
	}
	return m.ends.Event(reason, code)
}

func CreateMPVInstance() (*mpv.Mpv, error) {
	mpvInstance := mpv.Create()

	mpvInstance.SetOptionString("audio-display", "no")
	mpvInstance.SetOptionString("video", "no")
	mpvInstance.SetOptionString("idle", "yes")

	err := mpvInstance.Initialize()
	if err != nil {
		mpvInstance.TerminateDestroy()
		return nil, err
	}
	return mpvInstance, nil
}
