// Package playback connects the queue to the catalog gateway and the
// playback port.
package playback

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/library"
	"github.com/yhkl-dev/navistream/player"
)

// Bridge resolves stream URLs and drives a player. It implements
// queue.Transport.
type Bridge struct {
	library library.Library
	player  player.Player
	logger  *zap.Logger
}

// NewBridge creates a bridge that resolves streams through lib and plays
// them on p.
func NewBridge(lib library.Library, p player.Player, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{library: lib, player: p, logger: logger.Named("playback")}
}

// Play resolves track to a stream, loads it and starts it.
func (b *Bridge) Play(ctx context.Context, track domain.Track) error {
	url, err := b.library.StreamURL(ctx, track.ID)
	if err != nil {
		return domain.Wrap(domain.ErrStreamResolution, err)
	}
	if err := b.player.SetSource(url); err != nil {
		return errors.Wrapf(err, "load %q", track.Title)
	}
	if err := b.player.Play(); err != nil {
		return errors.Wrapf(err, "start %q", track.Title)
	}
	b.logger.Info("playing", zap.String("id", track.ID), zap.String("title", track.Title))
	return nil
}

func (b *Bridge) Pause() error {
	return errors.Wrap(b.player.Pause(), "pause")
}

func (b *Bridge) Resume() error {
	return errors.Wrap(b.player.Play(), "resume")
}
