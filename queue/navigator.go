package queue

import (
	"context"
	"math/rand/v2"

	"github.com/yhkl-dev/navistream/domain"
)

// Transport starts and pauses audio for queued tracks.
type Transport interface {
	// Play loads track into the player and starts it.
	Play(ctx context.Context, track domain.Track) error
	// Pause pauses the loaded track.
	Pause() error
	// Resume continues the loaded track.
	Resume() error
}

// Navigator applies navigation commands to a Queue and issues the matching
// playback calls. A failed play call leaves position and paused untouched.
//
// Navigator does no locking; its owner serializes access.
type Navigator struct {
	queue     *Queue
	transport Transport
	rng       *rand.Rand
	loaded    bool // current track has been handed to the transport
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithRand sets the random source used for shuffle and random picks.
func WithRand(rng *rand.Rand) Option {
	return func(n *Navigator) {
		n.rng = rng
	}
}

// NewNavigator creates a navigator over q.
func NewNavigator(q *Queue, transport Transport, opts ...Option) *Navigator {
	n := &Navigator{
		queue:     q,
		transport: transport,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Queue returns the underlying queue.
func (n *Navigator) Queue() *Queue {
	return n.queue
}

// Enqueue appends track and, if playNow, moves to it and plays it.
func (n *Navigator) Enqueue(ctx context.Context, track domain.Track, playNow bool) error {
	n.queue.Append(track)
	if !playNow {
		return nil
	}
	return n.playAt(ctx, n.queue.Len()-1)
}

// EnqueueAll appends tracks without touching playback.
func (n *Navigator) EnqueueAll(tracks []domain.Track) {
	n.queue.Append(tracks...)
}

// Advance moves to the next track and plays it. Without shuffle, advancing
// past the last track is a no-op. With shuffle, any entry may be picked,
// including the current one.
func (n *Navigator) Advance(ctx context.Context) error {
	if n.queue.IsEmpty() {
		return nil
	}
	next := n.queue.Position() + 1
	if n.queue.Shuffle() {
		next = n.rng.IntN(n.queue.Len())
	}
	if next >= n.queue.Len() {
		return nil
	}
	return n.playAt(ctx, next)
}

// TrackEnded handles the current track finishing on its own and advances
// the same way Advance does. At the end of the queue the finished track is
// marked paused so PlayPause starts it again.
func (n *Navigator) TrackEnded(ctx context.Context) error {
	if n.queue.IsEmpty() {
		return nil
	}
	n.loaded = false
	if !n.queue.Shuffle() && n.queue.Position() == n.queue.Len()-1 {
		n.queue.SetPaused(true)
		return nil
	}
	return n.Advance(ctx)
}

// StreamFailed handles the player losing the current track. The track
// stays current, marked paused and unloaded, so PlayPause retries it.
func (n *Navigator) StreamFailed() {
	if n.queue.IsEmpty() {
		return
	}
	n.loaded = false
	n.queue.SetPaused(true)
}

// Retreat moves to the previous track and plays it. No-op at the start.
func (n *Navigator) Retreat(ctx context.Context) error {
	prev := n.queue.Position() - 1
	if prev < 0 {
		return nil
	}
	return n.playAt(ctx, prev)
}

// Clear drops every track except the current one.
func (n *Navigator) Clear() {
	n.queue.KeepCurrent()
}

// TogglePause flips the pause intent and pauses or resumes the player.
// Resuming a track that was never loaded starts it instead.
func (n *Navigator) TogglePause(ctx context.Context) error {
	if n.queue.IsEmpty() {
		return nil
	}
	if n.queue.Paused() {
		if !n.loaded {
			return n.playAt(ctx, n.queue.Position())
		}
		if err := n.transport.Resume(); err != nil {
			return err
		}
		n.queue.SetPaused(false)
		return nil
	}
	if err := n.transport.Pause(); err != nil {
		return err
	}
	n.queue.SetPaused(true)
	return nil
}

// ToggleShuffle flips shuffle; it takes effect on the next Advance.
func (n *Navigator) ToggleShuffle() bool {
	n.queue.SetShuffle(!n.queue.Shuffle())
	return n.queue.Shuffle()
}

// PlayRandom appends a uniformly drawn catalog track, moves to it and plays
// it. An empty catalog is a no-op.
func (n *Navigator) PlayRandom(ctx context.Context, catalog []domain.Track) error {
	if len(catalog) == 0 {
		return nil
	}
	return n.Enqueue(ctx, catalog[n.rng.IntN(len(catalog))], true)
}

func (n *Navigator) playAt(ctx context.Context, index int) error {
	track := n.queue.At(index)
	if track == nil {
		return nil
	}
	if err := n.transport.Play(ctx, *track); err != nil {
		return err
	}
	n.queue.MoveTo(index)
	n.queue.SetPaused(false)
	n.loaded = true
	return nil
}
