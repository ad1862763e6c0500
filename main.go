package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yhkl-dev/navistream/beepplayer"
	"github.com/yhkl-dev/navistream/config"
	"github.com/yhkl-dev/navistream/device"
	"github.com/yhkl-dev/navistream/domain"
	"github.com/yhkl-dev/navistream/library"
	"github.com/yhkl-dev/navistream/mpvplayer"
	"github.com/yhkl-dev/navistream/playback"
	"github.com/yhkl-dev/navistream/player"
	"github.com/yhkl-dev/navistream/render"
	"github.com/yhkl-dev/navistream/session"
	"github.com/yhkl-dev/navistream/subsonic"
	"github.com/yhkl-dev/navistream/ui"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config.toml")
	list := pflag.BoolP("list", "l", false, "print the catalog as album artist / album / title and exit")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "navistream:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "navistream:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *list, logger)
	cancel()

	err = multierr.Append(err, ignoreSyncError(logger.Sync()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "navistream:", err)
		os.Exit(1)
	}
}

// newLogger writes JSON logs to the configured file. The terminal belongs to
// the UI, so without a file nothing is logged.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log.level")
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "create logger")
	}
	return logger, nil
}

func run(ctx context.Context, cfg *config.Config, list bool, logger *zap.Logger) (err error) {
	deviceID, err := device.LoadID(cfg.Device.IDFile)
	if err != nil {
		return err
	}

	client := subsonic.New(subsonic.Options{
		BaseURL:    cfg.Server.URL,
		ClientID:   cfg.Client.ID,
		APIVersion: cfg.Client.APIVersion,
		MaxBitRate: cfg.Player.MaxBitRate,
		Timeout:    cfg.Player.GetHTTPTimeout(),
	}, logger)
	lib := library.NewSubsonicLibrary(client, cfg.Client.PageSize, logger)

	auth := newAuthenticator(lib, cfg.Server, deviceID, ui.NewLoginPrompt(os.Stdin, os.Stdout))
	if err := auth.Login(ctx); err != nil {
		return err
	}

	if list {
		tracks, err := lib.AllTracks(ctx)
		if err != nil {
			return err
		}
		return library.PrintTree(os.Stdout, tracks)
	}

	renderer, err := render.NewRenderer(cfg.UI.Encoding, cfg.UI.TitleWidth)
	if err != nil {
		return err
	}

	p, err := newPlayer(ctx, cfg.Player.Backend, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, p.Close())
	}()

	for {
		s := session.New(lib, playback.NewBridge(lib, p, logger),
			session.WithLogger(logger),
			session.WithNoticeTTL(cfg.UI.NoticeTTL()),
		)
		runErr := ui.NewApp(s, renderer, p.Events(), logger).Run(ctx)
		if !errors.Is(runErr, domain.ErrAuthentication) {
			return runErr
		}

		logger.Warn("session rejected, logging in again", zap.Error(runErr))
		if err := p.Stop(); err != nil {
			logger.Warn("stop player", zap.Error(err))
		}
		fmt.Println("Session expired.")
		if err := auth.Login(ctx); err != nil {
			return err
		}
	}
}

func newPlayer(ctx context.Context, backend string, logger *zap.Logger) (player.Player, error) {
	switch backend {
	case player.BackendMPV:
		return mpvplayer.NewMPVPlayer(ctx, logger)
	case player.BackendBeep:
		// Streams are long reads, so no overall timeout.
		return beepplayer.New(&http.Client{}, logger)
	default:
		return nil, errors.Errorf("unknown player backend %q", backend)
	}
}

// ignoreSyncError drops the error fsync returns for non-file outputs.
func ignoreSyncError(err error) error {
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
