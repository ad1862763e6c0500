package mpvplayer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc"
	"github.com/wildeyedskies/go-mpv/mpv"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/player"
)

var _ player.Player = (*MPVPlayer)(nil)

// MPVPlayer implements player.Player using MPV media player
type MPVPlayer struct {
	instance *Mpvplayer
	events   chan player.Event
	cancel   context.CancelFunc
	wg       conc.WaitGroup
	logger   *zap.Logger
}

// NewMPVPlayer creates a new MPVPlayer instance and starts its event
// listener.
func NewMPVPlayer(ctx context.Context, logger *zap.Logger) (*MPVPlayer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mpvInstance, err := CreateMPVInstance()
	if err != nil {
		return nil, errors.Wrap(err, "create MPV instance")
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &MPVPlayer{
		instance: New(mpvInstance),
		events:   make(chan player.Event, 1),
		cancel:   cancel,
		logger:   logger.Named("mpv"),
	}
	p.wg.Go(func() { p.listen(ctx) })
	return p, nil
}

func (p *MPVPlayer) SetSource(url string) error {
	return errors.Wrap(p.instance.Load(url), "load source")
}

func (p *MPVPlayer) Play() error {
	return errors.Wrap(p.instance.SetPaused(false), "resume")
}

func (p *MPVPlayer) Pause() error {
	return errors.Wrap(p.instance.SetPaused(true), "pause")
}

func (p *MPVPlayer) Stop() error {
	return errors.Wrap(p.instance.Stop(), "stop")
}

func (p *MPVPlayer) Events() <-chan player.Event {
	return p.events
}

// Close stops the listener before destroying the handle it polls.
func (p *MPVPlayer) Close() error {
	p.cancel()
	p.wg.Wait()
	close(p.events)
	err := p.instance.Command([]string{"quit"})
	p.instance.TerminateDestroy()
	return errors.Wrap(err, "quit mpv")
}

func (p *MPVPlayer) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		e := p.instance.WaitEvent(1)
		if e == nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if e.Event_Id != mpv.EVENT_END_FILE {
			continue
		}
		ev, ok := p.instance.EndFileEvent(e)
		if !ok {
			p.logger.Debug("end of replaced stream ignored")
			continue
		}
		if ev.Err != nil {
			p.logger.Warn("stream ended with error", zap.Error(ev.Err))
		}

		select {
		case p.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
