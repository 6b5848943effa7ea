package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/lobby"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/service"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/rest"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	scoreRepo := repository.NewScoreRepository(redisStorage)
	matchRepo := repository.NewMatchRepository(redisStorage, conf.Persistence.MatchTTL)

	recorder := service.NewScoreRecorder(
		logger.With("component", "score_recorder"),
		scoreRepo,
		matchRepo,
		collector,
		conf.Persistence.QueueSize,
		conf.Persistence.Timeout,
	)
	go recorder.Run(ctx)

	gateway := websocket.New(logger.With("component", "gateway"), websocket.Options{
		MessagesPerSecond: conf.Gateway.MessagesPerSecond,
		Burst:             conf.Gateway.Burst,
		SendBuffer:        conf.Gateway.SendBuffer,
		WriteTimeout:      conf.Gateway.WriteTimeout,
		OriginPatterns:    conf.Gateway.OriginPatterns,
	}, collector)

	manager := usecase.NewSessionManager(
		logger.With("component", "session_manager"),
		usecase.Options{
			ChallengeTimeout: conf.Game.ChallengeTimeout,
			TeardownDelay:    conf.Game.TeardownDelay,
			InboxSize:        conf.Game.InboxSize,
			BotName:          conf.Game.BotName,
		},
		lobby.NewDirectory(),
		lobby.NewSessions(),
		gateway,
		recorder,
		service.NewBotService(),
		entity.NewLineEvaluator(),
		collector,
	)
	go manager.Run(ctx)

	sweep, err := scheduler.StartChallengeSweep(ctx, logger, conf.Game.ChallengeSweepInterval, manager)
	if err != nil {
		return fmt.Errorf("could not start challenge sweep: %w", err)
	}

	defer func() {
		if err = sweep.Shutdown(); err != nil {
			log.Error("could not stop challenge sweep", "error", err)
		}
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger.With("component", "rest"), manager, scoreRepo, matchRepo, metrics.Handler(registry))
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := gateway.Start(ctx, conf.SocketPort, manager); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
