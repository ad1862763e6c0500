// Package render formats the status line and window title from a snapshot
// of the player state.
package render

import (
	"fmt"
	"strings"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/searchmode"
)

// MaxTitleWidth caps the window title in display cells.
const MaxTitleWidth = 80

// View is a point-in-time copy of everything the display shows.
type View struct {
	Track    *domain.Track // current track, nil when the queue is empty
	Paused   bool
	Shuffle  bool
	Position int // 0-based, -1 when the queue is empty
	QueueLen int
	Search   *searchmode.Session // nil unless search mode is active
	Notice   string              // live transient notice
}

// Renderer turns views into display text for one display encoding.
type Renderer struct {
	cs         charset
	titleWidth int
}

// NewRenderer creates a renderer for the named display encoding. A title
// width outside (0, MaxTitleWidth] is clamped to MaxTitleWidth.
func NewRenderer(encoding string, titleWidth int) (*Renderer, error) {
	cs, err := lookupCharset(encoding)
	if err != nil {
		return nil, err
	}
	if titleWidth <= 0 || titleWidth > MaxTitleWidth {
		titleWidth = MaxTitleWidth
	}
	return &Renderer{cs: cs, titleWidth: titleWidth}, nil
}

// Text returns s in a form the display encoding can show.
func (r *Renderer) Text(s string) string {
	return fallback(r.cs, s)
}

// StatusLine renders v as a single line of exactly width cells. A width of
// zero or less returns the line unpadded.
func (r *Renderer) StatusLine(v View, width int) string {
	line := r.statusText(v)
	if width <= 0 {
		return line
	}
	return TruncateAndPad(line, width)
}

func (r *Renderer) statusText(v View) string {
	if v.Notice != "" {
		return r.Text(v.Notice)
	}
	if v.Search != nil {
		return r.searchText(v.Search)
	}
	if v.Track == nil {
		return "[Stopped] Nothing queued"
	}

	var b strings.Builder
	if v.Paused {
		b.WriteString("[Paused]  ")
	} else {
		b.WriteString("[Playing] ")
	}
	b.WriteString(r.titleBy(*v.Track))
	if v.QueueLen > 0 {
		fmt.Fprintf(&b, " (%d/%d)", v.Position+1, v.QueueLen)
	}
	if v.Shuffle {
		b.WriteString(" [shuffle]")
	}
	return b.String()
}

func (r *Renderer) searchText(s *searchmode.Session) string {
	t := s.Current()
	line := fmt.Sprintf("[Search %d/%d] %s", s.Position+1, len(s.Matches), r.titleBy(t))
	if t.Album != "" {
		line += " - " + r.Text(t.Album)
	}
	hint := s.Action.String()
	if s.StayOpen {
		hint += ", stays open"
	}
	return line + " (enter: " + hint + ")"
}

func (r *Renderer) titleBy(t domain.Track) string {
	title := r.Text(t.Title)
	if artist := t.DisplayArtist(); artist != "" {
		return title + " by " + r.Text(artist)
	}
	return title
}

// Title renders the window title for v: "<title> - <artist>" of the current
// track, or an empty string when nothing is queued.
func (r *Renderer) Title(v View) string {
	if v.Track == nil {
		return ""
	}
	title := r.Text(v.Track.Title)
	if artist := v.Track.DisplayArtist(); artist != "" {
		title += " - " + r.Text(artist)
	}
	return Truncate(title, r.titleWidth)
}
