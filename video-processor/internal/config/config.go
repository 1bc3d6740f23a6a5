// Package config loads the video processor settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/captions"
	"github.com/kenaxel/standfm2movie/internal/duration"
	"github.com/kenaxel/standfm2movie/internal/keywords"
	"github.com/kenaxel/standfm2movie/internal/storyboard"
)

// Settings holds everything the processor reads from the environment.
type Settings struct {
	SupabaseURL        string
	SupabaseServiceKey string

	Workers      int
	QueueSize    int
	PollInterval time.Duration
	JobTimeout   time.Duration

	// UploadDir and OutputDir must match the gateway's.
	UploadDir     string
	OutputDir     string
	WorkDir       string
	OutputURL     string
	MaxAudioBytes int64

	FFmpegPath  string
	FFprobePath string

	AssemblyAIKey     string
	PexelsAPIKey      string
	UnsplashAccessKey string
	StockRPS          float64
	StockCacheTTL     time.Duration
	CandidateCount    int
	KeywordCount      int

	RedisAddr     string
	RedisPassword string

	GRPCPort    string
	MetricsPort string

	Captions captions.Config
	Duration duration.Config
}

// Load reads .env (when present) and then the process environment.
func Load() *Settings {
	_ = godotenv.Load()

	tmp := os.TempDir()
	return &Settings{
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),

		Workers:      getEnvInt("PROCESSOR_WORKERS", 2),
		QueueSize:    getEnvInt("PROCESSOR_QUEUE_SIZE", 4),
		PollInterval: getEnvDuration("POLL_INTERVAL", 5*time.Second),
		JobTimeout:   getEnvDuration("JOB_TIMEOUT", 15*time.Minute),

		UploadDir:     getEnv("UPLOAD_DIR", filepath.Join(tmp, "standfm2movie", "uploads")),
		OutputDir:     getEnv("OUTPUT_DIR", filepath.Join(tmp, "standfm2movie", "output")),
		WorkDir:       getEnv("WORK_DIR", filepath.Join(tmp, "standfm2movie", "work")),
		OutputURL:     getEnv("OUTPUT_URL_PREFIX", "/api/v1/output/"),
		MaxAudioBytes: int64(getEnvInt("MAX_AUDIO_BYTES", audiosource.DefaultMaxBytes)),

		FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),

		AssemblyAIKey:     os.Getenv("ASSEMBLYAI_API_KEY"),
		PexelsAPIKey:      os.Getenv("PEXELS_API_KEY"),
		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		StockRPS:          getEnvFloat("STOCK_REQUESTS_PER_SECOND", 2),
		StockCacheTTL:     getEnvDuration("STOCK_CACHE_TTL", 10*time.Minute),
		CandidateCount:    getEnvInt("STOCK_CANDIDATES", 8),
		KeywordCount:      getEnvInt("KEYWORD_COUNT", keywords.DefaultTopN),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		GRPCPort:    getEnv("PROCESSOR_GRPC_PORT", "9090"),
		MetricsPort: getEnv("METRICS_PORT", "9091"),

		Captions: loadCaptions(),
		Duration: duration.Config{
			BytesPerMinute: int64(getEnvInt("DURATION_BYTES_PER_MINUTE", duration.DefaultBytesPerMinute)),
			MinSeconds:     getEnvFloat("DURATION_MIN_SECONDS", duration.DefaultMinSeconds),
			MaxSeconds:     getEnvFloat("DURATION_MAX_SECONDS", duration.DefaultMaxSeconds),
			DefaultSeconds: getEnvFloat("DURATION_DEFAULT_SECONDS", duration.DefaultSeconds),
		},
	}
}

// loadCaptions applies the CAPTION_* overrides. Merge thresholds accept zero,
// which disables that merge rule.
func loadCaptions() captions.Config {
	c := captions.DefaultConfig()
	c.MinDuration = getEnvNonNegative("CAPTION_MIN_DURATION", c.MinDuration)
	c.MinGap = getEnvNonNegative("CAPTION_MIN_GAP", c.MinGap)
	c.MaxCaptionSeconds = getEnvNonNegative("CAPTION_MAX_SECONDS", c.MaxCaptionSeconds)
	c.CJKChunkChars = getEnvInt("CAPTION_CJK_CHUNK_CHARS", c.CJKChunkChars)
	c.LatinChunkWords = getEnvInt("CAPTION_LATIN_CHUNK_WORDS", c.LatinChunkWords)
	c.CJKThreshold = getEnvFloat("CAPTION_CJK_THRESHOLD", c.CJKThreshold)
	if strings.EqualFold(os.Getenv("CAPTION_WEIGHTING"), "equal") {
		c.Weighting = captions.WeightEqual
	}
	return c
}

// Storyboard returns the composition settings derived from s.
func (s *Settings) Storyboard() storyboard.Config {
	cfg := storyboard.DefaultConfig()
	cfg.Captions = s.Captions
	cfg.Duration = s.Duration
	return cfg
}

// NewLogger builds the JSON logger used by the processor. The level comes
// from LOG_LEVEL and defaults to info.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvNonNegative(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
