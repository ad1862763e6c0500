// Package session owns the player state shared by the key loop and the
// playback event listener.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/input"
	"github.com/yhkl-dev/navistream/library"
	"github.com/yhkl-dev/navistream/player"
	"github.com/yhkl-dev/navistream/queue"
	"github.com/yhkl-dev/navistream/render"
	"github.com/yhkl-dev/navistream/search"
	"github.com/yhkl-dev/navistream/searchmode"
)

const (
	defaultNoticeTTL = 3 * time.Second

	noResultsNotice = "No results found."
)

// Session serializes every command and playback event behind one mutex.
type Session struct {
	mu       sync.Mutex
	nav      *queue.Navigator
	search   *searchmode.Controller
	library  library.Library
	notice   string
	noticeAt time.Time

	noticeTTL time.Duration
	now       func() time.Time
	rng       *rand.Rand
	logger    *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithNoticeTTL sets how long transient notices stay on screen.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.noticeTTL = ttl
		}
	}
}

// WithClock replaces time.Now for notice expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithRand sets the random source for shuffle and random picks.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// New creates a session with an empty queue. transport plays the queue;
// lib supplies the catalog.
func New(lib library.Library, transport queue.Transport, opts ...Option) *Session {
	s := &Session{
		search:    searchmode.NewController(),
		library:   lib,
		noticeTTL: defaultNoticeTTL,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("session")

	var navOpts []queue.Option
	if s.rng != nil {
		navOpts = append(navOpts, queue.WithRand(s.rng))
	}
	s.nav = queue.NewNavigator(queue.New(), transport, navOpts...)
	return s
}

// Start plays a random catalog track.
func (s *Session) Start(ctx context.Context) error {
	return s.Execute(ctx, input.PlayRandom)
}

// Mode reports which keymap applies to the next key.
func (s *Session) Mode() input.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search.Active() {
		return input.Search
	}
	return input.Normal
}

// Execute runs one command to completion. Recoverable failures become
// notices; only authentication failures are returned.
func (s *Session) Execute(ctx context.Context, cmd input.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case input.PlayPause:
		return s.fail("toggle playback", s.nav.TogglePause(ctx))
	case input.Advance:
		return s.fail("play next track", s.nav.Advance(ctx))
	case input.Retreat:
		return s.fail("play previous track", s.nav.Retreat(ctx))
	case input.PlayRandom:
		catalog, err := s.library.AllTracks(ctx)
		if err != nil {
			return s.fail("fetch catalog", err)
		}
		return s.fail("play random track", s.nav.PlayRandom(ctx, catalog))
	case input.ClearQueue:
		s.nav.Clear()
	case input.ToggleShuffle:
		on := s.nav.ToggleShuffle()
		s.logger.Debug("shuffle toggled", zap.Bool("on", on))
	case input.SelectNext:
		s.search.SelectNext()
	case input.SelectPrevious:
		s.search.SelectPrevious()
	case input.ConfirmSelection:
		op := "add track"
		if sess := s.search.Session(); sess != nil && sess.Action == searchmode.Play {
			op = "play track"
		}
		return s.fail(op, s.search.Confirm(ctx, s.nav))
	case input.CancelSearch:
		s.search.Cancel()
	}
	return nil
}

// Search runs query against the catalog for one of the search commands.
// Add-all appends every match at once; the others open search mode.
func (s *Session) Search(ctx context.Context, cmd input.Command, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !cmd.IsSearch() {
		return errors.Errorf("%s is not a search command", cmd)
	}

	catalog, err := s.library.AllTracks(ctx)
	if err != nil {
		return s.fail("fetch catalog", err)
	}
	matches := search.Search(catalog, query)
	s.logger.Debug("search", zap.String("query", query), zap.Int("matches", len(matches)))
	if len(matches) == 0 {
		s.setNotice(noResultsNotice)
		return nil
	}

	switch cmd {
	case input.SearchAddAll:
		s.nav.EnqueueAll(matches)
		s.setNotice(fmt.Sprintf("Added %d tracks.", len(matches)))
	case input.SearchAdd:
		s.search.Begin(matches, searchmode.AddOnly, false)
	case input.SearchAddStay:
		s.search.Begin(matches, searchmode.AddOnly, true)
	case input.SearchPlay:
		s.search.Begin(matches, searchmode.Play, false)
	}
	return nil
}

// TrackEnded advances past a track that finished on its own.
func (s *Session) TrackEnded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fail("play next track", s.nav.TrackEnded(ctx))
}

// Listen feeds player events into the session until ctx is done or events
// is closed, calling redraw after each one.
func (s *Session) Listen(ctx context.Context, events <-chan player.Event, redraw func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case player.TrackEnded:
				if err := s.TrackEnded(ctx); err != nil {
					return err
				}
			case player.PlaybackError:
				s.mu.Lock()
				s.nav.StreamFailed()
				_ = s.fail("play track", ev.Err)
				s.mu.Unlock()
			}
			redraw()
		}
	}
}

// Snapshot copies the displayed state.
func (s *Session) Snapshot() render.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.nav.Queue()
	v := render.View{
		Track:    q.Current(),
		Paused:   q.Paused(),
		Shuffle:  q.Shuffle(),
		Position: q.Position(),
		QueueLen: q.Len(),
		Search:   s.search.Session(),
	}
	if s.notice != "" && s.now().Before(s.noticeAt.Add(s.noticeTTL)) {
		v.Notice = s.notice
	}
	return v
}

// NoticeExpiry returns when the current notice disappears, or the zero
// time when there is none.
func (s *Session) NoticeExpiry() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notice == "" {
		return time.Time{}
	}
	return s.noticeAt.Add(s.noticeTTL)
}

func (s *Session) setNotice(msg string) {
	s.notice = msg
	s.noticeAt = s.now()
}

// fail turns err into a notice. Authentication errors end the session and
// are returned instead.
func (s *Session) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAuthentication) {
		return err
	}
	s.logger.Warn("command failed", zap.String("op", op), zap.Error(err))
	s.setNotice(fmt.Sprintf("Failed to %s: %v", op, err))
	return nil
}
