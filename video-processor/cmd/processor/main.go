package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/kenaxel/standfm2movie/internal/assemblyai"
	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/cache"
	"github.com/kenaxel/standfm2movie/internal/ffmpeg"
	"github.com/kenaxel/standfm2movie/internal/stock"
	"github.com/kenaxel/standfm2movie/video-processor/internal/config"
	"github.com/kenaxel/standfm2movie/video-processor/internal/db"
	"github.com/kenaxel/standfm2movie/video-processor/internal/jobs"
	"github.com/kenaxel/standfm2movie/video-processor/internal/metrics"
	"github.com/kenaxel/standfm2movie/video-processor/internal/worker"
)

func main() {
	settings := config.Load()
	logger := config.NewLogger()
	logger.Info("Starting Video Processor...")

	store, err := db.New(settings.SupabaseURL, settings.SupabaseServiceKey)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize Supabase client")
	}

	for _, dir := range []string{settings.UploadDir, settings.OutputDir, settings.WorkDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).WithField("dir", dir).Fatal("Failed to create working directory")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	stockCache, err := cache.New(settings.RedisAddr, settings.RedisPassword, "standfm2movie:")
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, stock search results will not be cached")
		stockCache = cache.Disabled()
	}
	defer stockCache.Close()

	pexels := stock.NewPexels(settings.PexelsAPIKey, settings.StockRPS)
	renderer := &jobs.Renderer{
		Config: jobs.RendererConfig{
			UploadDir:       settings.UploadDir,
			OutputDir:       settings.OutputDir,
			WorkRoot:        settings.WorkDir,
			OutputURLPrefix: settings.OutputURL,
			CandidateCount:  settings.CandidateCount,
			KeywordCount:    settings.KeywordCount,
			Storyboard:      settings.Storyboard(),
			JobTimeout:      settings.JobTimeout,
		},
		Store: store,
		Audio: audiosource.NewResolver(settings.MaxAudioBytes),
		Stock: &stock.Searcher{
			Pexels:   pexels,
			Videos:   pexels,
			Unsplash: stock.NewUnsplash(settings.UnsplashAccessKey, settings.StockRPS),
			Cache:    stockCache,
			TTL:      settings.StockCacheTTL,
			Logger:   logger,
		},
		Media:   ffmpeg.New(settings.FFmpegPath, settings.FFprobePath),
		Assets:  jobs.NewAssetDownloader(settings.StockRPS),
		Metrics: m,
		Logger:  logger,
	}
	if aai := assemblyai.NewClient(settings.AssemblyAIKey); aai.Enabled() {
		renderer.Transcriber = aai
	} else {
		logger.Warn("ASSEMBLYAI_API_KEY not set; jobs without a transcript get placeholder captions")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Dispatcher. Jobs get their own context so a running render
	// survives shutdown until Stop returns.
	dispatcher := worker.NewDispatcher(settings.Workers, settings.QueueSize, logger)
	dispatcher.Run(context.Background())

	poller := &jobs.Poller{
		Store:    store,
		Queue:    dispatcher,
		Renderer: renderer,
		Interval: settings.PollInterval,
		Metrics:  m,
		Logger:   logger,
	}
	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		poller.Run(ctx)
	}()

	// gRPC health endpoint polled by the gateway.
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", ":"+settings.GRPCPort)
	if err != nil {
		logger.WithError(err).Fatal("Failed to listen for gRPC")
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.WithError(err).Error("gRPC server stopped")
		}
	}()

	metricsApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	metricsApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	go func() {
		if err := metricsApp.Listen(":" + settings.MetricsPort); err != nil {
			logger.WithError(err).Error("Metrics server stopped")
		}
	}()

	logger.WithFields(logrus.Fields{
		"workers":      settings.Workers,
		"grpc_port":    settings.GRPCPort,
		"metrics_port": settings.MetricsPort,
	}).Info("Video Processor is running")

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down Video Processor...")
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	cancel()
	<-pollDone

	// Queued jobs go back to PENDING for another processor.
	poller.ReleaseAll(dispatcher.Stop())

	grpcServer.GracefulStop()
	if err := metricsApp.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.WithError(err).Warn("Metrics server shutdown failed")
	}
	logger.Info("Video Processor shut down gracefully.")
}
