package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the health check and the /api/v1 routes on app.
func RegisterRoutes(app *fiber.App, h *ApplicationHandler) {
	app.Get("/health", h.Health)

	apiV1 := app.Group("/api/v1")

	apiV1.Post("/transcribe", h.TranscribeAudio)
	apiV1.Post("/articles", h.GenerateArticle)
	apiV1.Post("/keywords", h.ExtractKeywords)

	// Image routes
	apiV1.Post("/images/generate", h.GenerateImage)
	apiV1.Get("/images/search", h.SearchImages)
	apiV1.Post("/images/search", h.SearchImages)

	// Audio routes
	apiV1.Post("/audio/upload", h.UploadAudio)
	apiV1.Post("/audio/download", h.DownloadAudio)

	// Video routes
	apiV1.Get("/videos/search", h.SearchVideos)
	apiV1.Post("/videos/search", h.SearchVideos)
	apiV1.Post("/videos", h.CreateVideo)
	apiV1.Get("/jobs/:jobId", h.GetJobStatus)
	apiV1.Get("/output/:filename", h.GetOutputFile)

	// Project routes
	apiV1.Get("/projects", h.ListProjects)
	apiV1.Get("/projects/:id", h.GetProject)
	apiV1.Get("/usage/:userId", h.GetUsage)
}
