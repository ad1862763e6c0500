// Package searchmode implements the modal state in which keystrokes page
// through search results instead of controlling playback.
package searchmode

import (
	"context"

	"github.com/yhkl-dev/navistream/domain"
)

// Action is what confirming a selection does besides appending it.
type Action int

const (
	// AddOnly appends the selected track to the queue.
	AddOnly Action = iota
	// Play appends the selected track and starts playing it.
	Play
)

func (a Action) String() string {
	if a == Play {
		return "play"
	}
	return "add"
}

// Session is the state of an open search. Matches is never empty and
// Position always indexes it.
type Session struct {
	Matches  []domain.Track
	Position int
	Action   Action
	StayOpen bool
}

// Current returns the selected match.
func (s *Session) Current() domain.Track {
	return s.Matches[s.Position]
}

// Enqueuer receives confirmed selections.
type Enqueuer interface {
	Enqueue(ctx context.Context, track domain.Track, playNow bool) error
}

// Controller holds the search mode state: Inactive when session is nil,
// Active otherwise.
type Controller struct {
	session *Session
}

// NewController creates an inactive controller.
func NewController() *Controller {
	return &Controller{}
}

// Active reports whether a search is open.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session returns a copy of the open search, or nil when inactive.
func (c *Controller) Session() *Session {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Begin opens a search over matches. It returns false and stays inactive
// when there is nothing to select.
func (c *Controller) Begin(matches []domain.Track, action Action, stayOpen bool) bool {
	if len(matches) == 0 {
		return false
	}
	c.session = &Session{
		Matches:  matches,
		Position: 0,
		Action:   action,
		StayOpen: stayOpen,
	}
	return true
}

// SelectNext moves the selection down, stopping at the last match.
func (c *Controller) SelectNext() {
	if c.session == nil {
		return
	}
	if c.session.Position < len(c.session.Matches)-1 {
		c.session.Position++
	}
}

// SelectPrevious moves the selection up, stopping at the first match.
func (c *Controller) SelectPrevious() {
	if c.session == nil {
		return
	}
	if c.session.Position > 0 {
		c.session.Position--
	}
}

// Confirm hands the selected match to q. Unless the search stays open it
// is closed afterwards, even when starting playback failed.
func (c *Controller) Confirm(ctx context.Context, q Enqueuer) error {
	if c.session == nil {
		return nil
	}
	s := c.session
	if !s.StayOpen {
		c.session = nil
	}
	return q.Enqueue(ctx, s.Current(), s.Action == Play)
}

// Cancel closes the search and discards its matches.
func (c *Controller) Cancel() {
	c.session = nil
}
