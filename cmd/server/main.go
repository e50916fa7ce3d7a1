// Package main runs the podcast studio HTTP server with WebSocket and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/podhaven/backend/config"
	"github.com/podhaven/backend/internal/capture"
	"github.com/podhaven/backend/internal/catalog"
	"github.com/podhaven/backend/internal/enrich"
	"github.com/podhaven/backend/internal/middleware"
	"github.com/podhaven/backend/internal/playback"
	"github.com/podhaven/backend/internal/profile"
	"github.com/podhaven/backend/internal/realtime"
	"github.com/podhaven/backend/internal/studio"
	"github.com/podhaven/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	catalogStore, err := catalog.NewStore()
	if err != nil {
		logger.Fatal("catalog", zap.Error(err))
	}
	profileStore := profile.NewStore()

	hub := realtime.NewHub(logger)

	// The microphone lives on the connected studio client: acquiring it just
	// requires someone there to grant it, and releasing it tells them to stop
	// the recorder.
	device := capture.DeviceFunc(func(ctx context.Context) (capture.Stream, error) {
		if hub.Count(realtime.RoomStudio) == 0 {
			return nil, capture.ErrPermissionDenied
		}
		hub.Broadcast(realtime.RoomStudio, "capture_granted", nil)
		return capture.StreamFunc(func() error {
			hub.Broadcast(realtime.RoomStudio, "capture_released", nil)
			return nil
		}), nil
	})

	session := capture.NewSession(device, capture.Config{
		Bins:            cfg.Capture.SpectrumBins,
		RefreshInterval: time.Duration(cfg.Capture.RefreshIntervalMS) * time.Millisecond,
	}, func(frame []byte) {
		// []byte marshals to base64; the client decodes it back into the
		// magnitude array for the visualizer.
		hub.Broadcast(realtime.RoomStudio, "viz_frame", map[string]interface{}{"magnitudes": frame})
	}, logger)

	studioSvc := studio.New(session, logger)
	enricher := enrich.NewEnricher(enrich.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model), logger)

	controller := playback.NewController(
		playback.NewWSOutputFactory(hub, realtime.RoomPlayer), logger)

	catalogHandler := catalog.NewHandler(catalogStore)
	profileHandler := profile.NewHandler(profileStore, catalogStore, logger)
	studioHandler := studio.NewHandler(studioSvc, enricher, profileStore, logger)
	playerHandler := playback.NewHandler(controller, catalogStore, profileStore)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Catalog
	router.GET("/podcasts", catalogHandler.List)
	router.GET("/podcasts/:id", catalogHandler.GetByID)
	router.GET("/podcasts/:id/episodes", catalogHandler.ListEpisodes)
	router.POST("/podcasts/:id/subscribe", profileHandler.ToggleSubscription)

	// Profile
	router.GET("/profile", profileHandler.Get)
	router.PATCH("/profile", profileHandler.Update)
	router.GET("/profile/subscriptions", profileHandler.ListSubscriptions)
	router.GET("/profile/recordings", profileHandler.ListRecordings)
	router.DELETE("/recordings/:id", profileHandler.DeleteRecording)
	router.GET("/recordings/:id/audio", profileHandler.RecordingAudio)

	// Studio
	router.GET("/studio", studioHandler.State)
	router.POST("/studio/capture/start", studioHandler.StartCapture)
	router.POST("/studio/capture/stop", studioHandler.StopCapture)
	router.PATCH("/studio/trim", studioHandler.AdjustTrim)
	router.POST("/studio/enrich", studioHandler.Enrich)
	router.PATCH("/studio/metadata", studioHandler.UpdateMetadata)
	router.POST("/studio/save", studioHandler.Save)
	router.POST("/studio/discard", studioHandler.Discard)

	// Player
	router.GET("/player", playerHandler.State)
	router.POST("/player/play", playerHandler.Play)
	router.POST("/player/toggle", playerHandler.Toggle)

	// WebSocket (room in query: studio or player)
	router.GET("/ws", realtime.ServeWs(hub, logger, realtime.Handlers{
		Fragment: session.AppendFragment,
		Position: func(handle uint64, seconds float64) {
			controller.OnPosition(playback.Handle(handle), seconds)
		},
		Ended: func(handle uint64) {
			controller.OnEnded(playback.Handle(handle))
		},
	}))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	session.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
