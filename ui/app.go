package ui

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
	"github.com/sourcegraph/conc"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/input"
	"github.com/yhkl-dev/navistream/player"
	"github.com/yhkl-dev/navistream/render"
	"github.com/yhkl-dev/navistream/session"
)

const keyBuffer = 64

// searchRequest is a submitted search prompt.
type searchRequest struct {
	cmd   input.Command
	query string
}

// App is the terminal surface: one status line plus a search prompt that
// appears on demand.
type App struct {
	tviewApp   *tview.Application
	session    *session.Session
	renderer   *render.Renderer
	dispatcher *input.Dispatcher
	events     <-chan player.Event
	logger     *zap.Logger

	keys     chan input.Key
	searches chan searchRequest

	root      *tview.Flex
	statusBar *tview.TextView
	prompt    *SearchPrompt

	// publishMu keeps snapshots stored in the order they were taken.
	publishMu sync.Mutex
	mu        sync.Mutex
	view      render.View
	lastTitle string
	fatal     error

	ctx     context.Context
	stopped *atomic.Bool
}

// NewApp wires the terminal to a session. events are the player's
// end-of-stream notifications.
func NewApp(s *session.Session, r *render.Renderer, events <-chan player.Event, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		tviewApp:   tview.NewApplication(),
		session:    s,
		renderer:   r,
		dispatcher: input.NewDispatcher(),
		events:     events,
		logger:     logger.Named("ui"),
		keys:       make(chan input.Key, keyBuffer),
		searches:   make(chan searchRequest, 1),
		stopped:    atomic.NewBool(false),
	}
}

// Run shows the player until the user quits or the session ends with an
// authentication error, which is returned.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx

	a.build()

	var wg conc.WaitGroup
	wg.Go(func() {
		<-ctx.Done()
		a.Stop()
	})
	wg.Go(func() {
		a.keyLoop(ctx)
	})
	wg.Go(func() {
		if err := a.session.Listen(ctx, a.events, a.publish); err != nil {
			a.fail(err)
		}
	})

	a.logger.Info("starting")
	err := a.tviewApp.Run()
	a.stopped.Store(true)
	cancel()

	if r := wg.WaitAndRecover(); r != nil {
		return errors.Errorf("ui worker panicked: %v", r.Value)
	}
	if err != nil {
		return errors.Wrap(err, "run terminal")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fatal
}

// Stop stops the application
func (a *App) Stop() {
	a.stopped.Store(true)
	a.tviewApp.Stop()
}

func (a *App) build() {
	a.statusBar = tview.NewTextView().
		SetDynamicColors(false).
		SetWrap(false)

	a.prompt = NewSearchPrompt(a.submitSearch, a.closePrompt)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.prompt.Field(), 0, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	a.tviewApp.SetInputCapture(a.captureKey)
	a.tviewApp.SetBeforeDrawFunc(a.beforeDraw)
	a.tviewApp.SetRoot(a.root, true).SetFocus(a.statusBar)
}

// captureKey forwards keys to the key loop unless the prompt is open.
// Ctrl-C and Ctrl-D cancel an open prompt; tview would otherwise quit on
// Ctrl-C.
func (a *App) captureKey(event *tcell.EventKey) *tcell.EventKey {
	if a.prompt.Active() {
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlD:
			a.prompt.Cancel()
			return nil
		}
		return event
	}
	select {
	case a.keys <- input.FromEvent(event):
	default:
		a.logger.Warn("key dropped, key loop busy")
	}
	return nil
}

// beforeDraw renders the latest snapshot at the current screen width.
func (a *App) beforeDraw(screen tcell.Screen) bool {
	width, _ := screen.Size()

	a.mu.Lock()
	view := a.view
	a.mu.Unlock()

	a.statusBar.SetText(a.renderer.StatusLine(view, width))

	if title := a.renderer.Title(view); title != a.lastTitle {
		a.lastTitle = title
		screen.SetTitle(title)
	}
	return false
}

// keyLoop runs each command to completion before reading the next key.
func (a *App) keyLoop(ctx context.Context) {
	// Wait for the event loop so that Stop takes effect.
	a.queueUpdate(func() {})

	if err := a.session.Start(ctx); err != nil {
		a.fail(err)
		return
	}
	a.publish()

	for {
		select {
		case <-ctx.Done():
			return
		case key := <-a.keys:
			a.handleKey(ctx, key)
		case req := <-a.searches:
			if err := a.session.Search(ctx, req.cmd, req.query); err != nil {
				a.fail(err)
				return
			}
			a.publish()
		}
	}
}

func (a *App) handleKey(ctx context.Context, key input.Key) {
	cmd := a.dispatcher.Dispatch(key, a.session.Mode())
	switch {
	case cmd == input.None:
		return
	case cmd == input.Quit:
		a.Stop()
		return
	case cmd.IsSearch():
		a.queueUpdate(func() {
			a.openPrompt(cmd)
		})
		return
	}

	a.logger.Debug("command", zap.Stringer("cmd", cmd))
	if err := a.session.Execute(ctx, cmd); err != nil {
		a.fail(err)
		return
	}
	a.publish()
}

// publish snapshots the session and schedules a redraw, plus another one
// when a live notice expires.
func (a *App) publish() {
	a.publishMu.Lock()
	view := a.session.Snapshot()
	a.mu.Lock()
	a.view = view
	a.mu.Unlock()
	a.publishMu.Unlock()

	if expiry := a.session.NoticeExpiry(); !expiry.IsZero() && view.Notice != "" {
		time.AfterFunc(time.Until(expiry)+10*time.Millisecond, a.publish)
	}
	a.queueUpdate(func() {})
}

// queueUpdate runs f on the UI goroutine and redraws. QueueUpdateDraw
// blocks forever once the event loop has exited, so the wait is abandoned
// on shutdown.
func (a *App) queueUpdate(f func()) {
	if a.stopped.Load() {
		return
	}
	done := make(chan struct{})
	go func() {
		a.tviewApp.QueueUpdateDraw(f)
		close(done)
	}()
	select {
	case <-done:
	case <-a.ctx.Done():
	}
}

func (a *App) openPrompt(cmd input.Command) {
	a.prompt.Open(cmd)
	a.root.ResizeItem(a.prompt.Field(), 1, 0)
	a.tviewApp.SetFocus(a.prompt.Field())
}

// closePrompt runs on the UI goroutine.
func (a *App) closePrompt() {
	a.root.ResizeItem(a.prompt.Field(), 0, 0)
	a.tviewApp.SetFocus(a.statusBar)
}

// submitSearch runs on the UI goroutine, so it must not block.
func (a *App) submitSearch(cmd input.Command, query string) {
	a.closePrompt()
	select {
	case a.searches <- searchRequest{cmd: cmd, query: query}:
	default:
		a.logger.Warn("search dropped, previous one still running")
	}
}

// fail records a session-ending error and stops the terminal.
func (a *App) fail(err error) {
	a.logger.Error("session ended", zap.Error(err))
	a.mu.Lock()
	if a.fatal == nil {
		a.fatal = err
	}
	a.mu.Unlock()
	a.Stop()
}
