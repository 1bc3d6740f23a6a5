package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kenaxel/standfm2movie/internal/audiosource"
)

// Settings holds everything the gateway reads from the environment.
type Settings struct {
	Port         string
	AllowOrigins string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseAnonKey    string

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	ChatModel      string
	WhisperModel   string
	ImageModel     string
	RequestTimeout time.Duration

	PexelsAPIKey      string
	UnsplashAccessKey string
	StockRPS          float64
	StockCacheTTL     time.Duration

	RedisAddr     string
	RedisPassword string

	// UploadDir is shared with the video processor; temp_file audio inputs
	// are resolved relative to it.
	UploadDir     string
	OutputDir     string
	MaxAudioBytes int64

	FFmpegPath  string
	FFprobePath string

	// ProcessorHealthAddr is the gRPC health endpoint of the video processor.
	ProcessorHealthAddr string
}

// Load reads .env (when present) and then the process environment.
func Load() *Settings {
	_ = godotenv.Load()

	tmp := os.TempDir()
	return &Settings{
		Port:         getEnv("PORT", "8080"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4"),
		WhisperModel:   getEnv("OPENAI_WHISPER_MODEL", "whisper-1"),
		ImageModel:     getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Minute),

		PexelsAPIKey:      os.Getenv("PEXELS_API_KEY"),
		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		StockRPS:          getEnvFloat("STOCK_REQUESTS_PER_SECOND", 2),
		StockCacheTTL:     getEnvDuration("STOCK_CACHE_TTL", 10*time.Minute),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		UploadDir:     getEnv("UPLOAD_DIR", filepath.Join(tmp, "standfm2movie", "uploads")),
		OutputDir:     getEnv("OUTPUT_DIR", filepath.Join(tmp, "standfm2movie", "output")),
		MaxAudioBytes: getEnvInt64("MAX_AUDIO_BYTES", audiosource.DefaultMaxBytes),

		FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),

		ProcessorHealthAddr: os.Getenv("PROCESSOR_GRPC_ADDR"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
