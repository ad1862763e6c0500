// Package queue owns the playback queue: its tracks, the current position,
// the shuffle flag and the paused flag.
package queue

import "github.com/yhkl-dev/navistream/domain"

// Queue is an ordered list of tracks with a playback cursor.
//
// Queue does no locking; its owner serializes access.
type Queue struct {
	tracks   []domain.Track
	position int // -1 if empty
	shuffle  bool
	paused   bool
}

// New creates an empty queue. Nothing is playing, so it starts paused.
func New() *Queue {
	return &Queue{
		tracks:   make([]domain.Track, 0),
		position: -1,
		paused:   true,
	}
}

// Append adds tracks to the end without changing playback. The first track
// appended to an empty queue becomes the current one.
func (q *Queue) Append(tracks ...domain.Track) {
	q.tracks = append(q.tracks, tracks...)
	if q.position < 0 && len(q.tracks) > 0 {
		q.position = 0
	}
}

// At returns the track at index, or nil if out of bounds.
func (q *Queue) At(index int) *domain.Track {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	t := q.tracks[index]
	return &t
}

// Current returns the track at the current position, or nil if empty.
func (q *Queue) Current() *domain.Track {
	return q.At(q.position)
}

// Position returns the current index (-1 if empty).
func (q *Queue) Position() int {
	return q.position
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// MoveTo sets the current position. Returns false for an invalid index.
func (q *Queue) MoveTo(index int) bool {
	if index < 0 || index >= len(q.tracks) {
		return false
	}
	q.position = index
	return true
}

// KeepCurrent replaces the queue with a single-element queue holding the
// current track. An empty queue stays empty.
func (q *Queue) KeepCurrent() {
	current := q.Current()
	if current == nil {
		return
	}
	q.tracks = []domain.Track{*current}
	q.position = 0
}

// Shuffle reports whether advancing picks a random entry.
func (q *Queue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle enables or disables shuffle.
func (q *Queue) SetShuffle(enabled bool) {
	q.shuffle = enabled
}

// Paused reports the user's pause intent.
func (q *Queue) Paused() bool {
	return q.paused
}

// SetPaused records the user's pause intent.
func (q *Queue) SetPaused(paused bool) {
	q.paused = paused
}
