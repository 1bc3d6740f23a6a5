// @title standfm2movie API
// @version 1.0
// @description Turns stand.fm audio into captioned videos and note articles.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"github.com/kenaxel/standfm2movie/api-gateway/config"
	_ "github.com/kenaxel/standfm2movie/api-gateway/docs"
	"github.com/kenaxel/standfm2movie/api-gateway/handlers"
	"github.com/kenaxel/standfm2movie/api-gateway/internal/aiclient"
	"github.com/kenaxel/standfm2movie/api-gateway/internal/store"
	"github.com/kenaxel/standfm2movie/api-gateway/middleware"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/cache"
	"github.com/kenaxel/standfm2movie/internal/ffmpeg"
	"github.com/kenaxel/standfm2movie/internal/stock"
)

func main() {
	settings := config.Load()
	logger := config.InitLogger()

	for _, dir := range []string{settings.UploadDir, settings.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).WithField("dir", dir).Fatal("Failed to create working directory")
		}
	}

	h := handlers.NewApplicationHandler(settings, logger)

	// Initialize Supabase client
	if client, err := config.InitSupabase(settings); err != nil {
		logger.WithError(err).Warn("Supabase is not configured; job and project routes are disabled")
	} else {
		h.DB = store.New(client)
	}

	if ai, err := aiclient.New(aiclient.Config{
		APIKey:       settings.OpenAIAPIKey,
		BaseURL:      settings.OpenAIBaseURL,
		ChatModel:    settings.ChatModel,
		WhisperModel: settings.WhisperModel,
		ImageModel:   settings.ImageModel,
	}); err != nil {
		logger.WithError(err).Warn("OpenAI is not configured; transcription and article generation are disabled")
	} else {
		h.AIClient = ai
	}

	stockCache, err := cache.New(settings.RedisAddr, settings.RedisPassword, "standfm2movie:")
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, stock search results will not be cached")
		stockCache = cache.Disabled()
	}
	defer stockCache.Close()

	pexels := stock.NewPexels(settings.PexelsAPIKey, settings.StockRPS)
	h.Stock = &stock.Searcher{
		Pexels:   pexels,
		Videos:   pexels,
		Unsplash: stock.NewUnsplash(settings.UnsplashAccessKey, settings.StockRPS),
		Cache:    stockCache,
		TTL:      settings.StockCacheTTL,
		Logger:   logger,
	}
	h.Audio = audiosource.NewResolver(settings.MaxAudioBytes)
	h.Media = ffmpeg.New(settings.FFmpegPath, settings.FFprobePath)

	if settings.ProcessorHealthAddr != "" {
		processor, err := aiclient.NewProcessorHealth(settings.ProcessorHealthAddr)
		if err != nil {
			logger.WithError(err).Warn("Failed to create video processor health client")
		} else {
			defer processor.Close()
			h.Processor = processor
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(registry)

	app := fiber.New(fiber.Config{
		AppName:      "standfm2movie-gateway",
		BodyLimit:    int(settings.MaxAudioBytes) + 1<<20,
		ReadTimeout:  settings.RequestTimeout,
		WriteTimeout: settings.RequestTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			apiCode := apperr.CodeInternal
			switch {
			case code == fiber.StatusNotFound:
				apiCode = apperr.CodeNotFound
			case code == fiber.StatusRequestEntityTooLarge:
				apiCode = apperr.CodeAudioTooLarge
			case code < fiber.StatusInternalServerError:
				apiCode = apperr.CodeInvalidRequest
			}
			return utils.RespondWithAPIError(c, code, apiCode, err.Error(), nil)
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  settings.AllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Range, X-Request-ID",
		ExposeHeaders: "Content-Range, Content-Length, Accept-Ranges, X-Request-ID",
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(httpMetrics.Handler())
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), settings.RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	handlers.RegisterRoutes(app, h)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down API Gateway...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	logger.WithField("port", settings.Port).Info("Starting API Gateway")
	if err := app.Listen(":" + settings.Port); err != nil {
		logger.WithError(err).Fatal("API Gateway stopped")
	}
}
