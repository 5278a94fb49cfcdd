package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/client"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/hub"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-match/internal/service"
	"github.com/rocketscienceinc/tictactoe-match/transport/rest"
	"github.com/rocketscienceinc/tictactoe-match/transport/websocket"
)

const (
	UserServiceName = "user-service"
	RoomServiceName = "room-service"
	GameServiceName = "game-service"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// signalContext - a context that is canceled on SIGINT or SIGTERM.
func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// RunUserService - runs the player ledger backed by redis.
func RunUserService(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app", "service", UserServiceName)

	ctx, cancel := signalContext(log)
	defer cancel()

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerService := service.NewPlayerService(logger, repository.NewPlayerRepository(redisStorage))

	router := rest.NewRouter(logger, rest.NewHealthHandler(UserServiceName))
	rest.NewUserHandler(playerService).Register(router)

	log.Info("Starting HTTP server", "port", conf.UserService.Port)

	return serve(ctx, log, router, conf.UserService.Port)
}

// RunRoomService - runs the room broker.
func RunRoomService(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app", "service", RoomServiceName)

	ctx, cancel := signalContext(log)
	defer cancel()

	gameClient := client.NewGameClient(conf.GameService.URL, nil)
	roomService := service.NewRoomService(logger, gameClient, conf.RoomService.StartTimeout)

	router := rest.NewRouter(logger, rest.NewHealthHandler(RoomServiceName))
	rest.NewRoomHandler(logger, roomService).Register(router)

	log.Info("Starting HTTP server", "port", conf.RoomService.Port)

	return serve(ctx, log, router, conf.RoomService.Port)
}

// RunGameService - runs the match engine with its websocket endpoint and the result reporter.
func RunGameService(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app", "service", GameServiceName)

	ctx, cancel := signalContext(log)
	defer cancel()

	userClient := client.NewUserClient(conf.UserService.URL, nil)
	reporter := service.NewReporter(logger, userClient, conf.GameService.ReportQueueSize, conf.GameService.ReportTimeout)
	go reporter.Run(ctx)

	registry := hub.New(logger)
	matchService := service.NewMatchService(logger, registry, reporter)

	router := rest.NewRouter(logger, rest.NewHealthHandler(GameServiceName).WithRegistry(registry))
	rest.NewGameHandler(matchService).Register(router)
	router.GET("/ws", websocket.New(logger, matchService).Handle)

	log.Info("Starting HTTP server", "port", conf.GameService.Port)

	return serve(ctx, log, router, conf.GameService.Port)
}

func serve(ctx context.Context, log *slog.Logger, router *echo.Echo, port string) error {
	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- rest.Start(ctx, router, config.ListenAddr(port))
	}()

	select {
	case err := <-httpErrCh:
		if err != nil {
			log.Error("HTTP server error", "error", err)
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		if err := <-httpErrCh; err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}
}
