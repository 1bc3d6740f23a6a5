package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/api-gateway/config"
	"github.com/kenaxel/standfm2movie/api-gateway/internal/aiclient"
	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/internal/audiosource"
	"github.com/kenaxel/standfm2movie/internal/stock"
)

// AIClientInterface defines the operations handlers expect from an AI client.
// The concrete implementation is provided by the aiclient package.
type AIClientInterface interface {
	Transcribe(ctx context.Context, path string) (*aiclient.Transcription, error)
	Chat(ctx context.Context, req aiclient.ChatRequest) (string, error)
	GenerateImage(ctx context.Context, req aiclient.ImageRequest) (string, error)
}

// Store is the persistence the handlers need. store.Supabase implements it.
type Store interface {
	CreateJob(jobType string, payload interface{}) (string, error)
	GetJob(jobID string) (*models.VideoJobStatus, error)
	ListProjects(userID string, limit int) ([]models.VideoProject, error)
	GetProject(id string) (*models.VideoProject, error)
	UpdateProjectStatus(id, status, videoURL string) error
	GetUsage(userID string) (*models.UserUsage, error)
	IncrementAPICalls(userID string) error
}

// StockSearcher finds stock images and videos.
type StockSearcher interface {
	Images(ctx context.Context, q stock.Query, sel stock.Selection) ([]stock.Result, error)
	VideoClips(ctx context.Context, q stock.Query) ([]stock.Result, error)
}

// AudioFetcher downloads remote audio, resolving stand.fm pages first.
type AudioFetcher interface {
	Fetch(ctx context.Context, rawURL, dir string) (*audiosource.File, error)
}

// MediaTool probes and transcodes audio files.
type MediaTool interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
	TranscodeToMP3(ctx context.Context, inputFile, outputFile string) error
}

// HealthChecker reports the status of a downstream service.
type HealthChecker interface {
	Check(ctx context.Context) (string, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	AIClient  AIClientInterface
	Logger    *logrus.Logger
	DB        Store
	Stock     StockSearcher
	Audio     AudioFetcher
	Media     MediaTool
	Processor HealthChecker
	Validate  *validator.Validate
	Settings  *config.Settings
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
// Optional collaborators (AIClient, DB, Processor) may be left nil; the
// handlers that need them then answer with an error.
func NewApplicationHandler(settings *config.Settings, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:   logger,
		Validate: validator.New(),
		Settings: settings,
	}
}
