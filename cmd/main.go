package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	api_middleware "github.com/thesrcielos/RobotArena/api/middleware"
	v1 "github.com/thesrcielos/RobotArena/api/v1"
	"github.com/thesrcielos/RobotArena/internal/config"
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/live"
	"github.com/thesrcielos/RobotArena/internal/metrics"
	"github.com/thesrcielos/RobotArena/internal/stats"
	"github.com/thesrcielos/RobotArena/internal/user"
	"github.com/thesrcielos/RobotArena/pkg/db"
	"github.com/thesrcielos/RobotArena/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Error loading configuration")
	}
	config.ConfigureLogger(cfg)

	if err := db.Init(cfg); err != nil {
		log.WithError(err).Fatal("Error initializing storage")
	}
	defer db.Close()

	if err := db.DB.AutoMigrate(&user.User{}, &game.Game{}); err != nil {
		log.WithError(err).Fatal("Error migrating database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewService()
	userRepo := user.NewUserRepository(db.DB)
	notifier := live.NewRedisNotifier(db.Rdb, cfg.Redis.StatsChannel)

	v1.UserService = user.NewUserService(userRepo, cfg.JWTSecret, cfg.InitialRating)
	v1.StatsService = stats.NewService(stats.NewGormStore(db.DB), m)
	v1.GameService = game.NewGameService(game.NewGameRepository(db.DB), userRepo, notifier, m)

	registry := live.NewRegistry()
	pusher := live.NewPusher(registry, v1.StatsService)
	if err := notifier.Subscribe(ctx, pusher.HandleEvent); err != nil {
		log.WithError(err).Fatal("Error subscribing to stats updates")
	}
	wsHandler := websocket.NewHandler(registry, pusher, cfg.JWTSecret, m)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api_middleware.ErrorHandler

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api/v1")
	v1.RegisterUserRoutes(api.Group("/users"))

	g := api.Group("/games")
	g.Use(api_middleware.SetupJWTMiddleware(cfg.JWTSecret))
	v1.RegisterGameRoutes(g)

	e.GET("/live", wsHandler.WebSocketHandler)
	e.GET("/metrics", echo.WrapHandler(metrics.NewMetricsHandler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "instance": notifier.InstanceID()})
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	pusher.Wait()
}
