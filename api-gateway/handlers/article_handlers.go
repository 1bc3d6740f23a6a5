package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/api-gateway/internal/aiclient"
	"github.com/kenaxel/standfm2movie/api-gateway/internal/article"
	"github.com/kenaxel/standfm2movie/api-gateway/middleware"
	"github.com/kenaxel/standfm2movie/api-gateway/models"
	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
)

// GenerateArticleRequest is the body of POST /articles.
type GenerateArticleRequest struct {
	Transcript string                    `json:"transcript" validate:"required,max=100000"`
	Settings   models.GenerationSettings `json:"settings" validate:"required"`
}

// GenerateImageRequest is the body of POST /images/generate.
type GenerateImageRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Tone    string `json:"tone"`
	Purpose string `json:"purpose"`
}

// GenerateImageResponse carries the generated cover image.
type GenerateImageResponse struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
}

// GenerateArticle godoc
// @Summary Generate an article from a transcript
// @Description Natural mode rewrites the transcript as prose; article mode produces a titled note article with sections and markdown.
// @Tags articles
// @Accept json
// @Produce json
// @Param request body GenerateArticleRequest true "Transcript and generation settings"
// @Success 200 {object} models.GeneratedContent
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /articles [post]
func (h *ApplicationHandler) GenerateArticle(c *fiber.Ctx) error {
	var req GenerateArticleRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if h.AIClient == nil {
		return h.respondErr(c, apperr.New(apperr.CodeGenerationFailed, "OpenAI API key is not configured"), apperr.CodeGenerationFailed)
	}

	req.Transcript = utils.SanitizeInput(req.Transcript)
	text, err := h.AIClient.Chat(c.UserContext(), aiclient.ChatRequest{
		System:      article.SystemPrompt,
		User:        article.BuildPrompt(req.Transcript, req.Settings),
		Temperature: article.Temperature,
		MaxTokens:   article.MaxTokens,
	})
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeGenerationFailed, "article generation failed", err), apperr.CodeGenerationFailed)
	}

	content := article.Sanitize(article.Parse(text, req.Settings))
	h.Logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"mode":       req.Settings.ProcessingMode,
		"title":      content.SEOTitle,
	}).Info("Article generated")
	return utils.RespondWithJSON(c, fiber.StatusOK, content)
}

// GenerateImage godoc
// @Summary Generate a cover image
// @Description Builds an illustration prompt from the article title and purpose and returns the generated image URL.
// @Tags images
// @Accept json
// @Produce json
// @Param request body GenerateImageRequest true "Article title, tone and purpose"
// @Success 200 {object} GenerateImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /images/generate [post]
func (h *ApplicationHandler) GenerateImage(c *fiber.Ctx) error {
	var req GenerateImageRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if h.AIClient == nil {
		return h.respondErr(c, apperr.New(apperr.CodeGenerationFailed, "OpenAI API key is not configured"), apperr.CodeGenerationFailed)
	}

	prompt := article.CoverImagePrompt(req.Title, req.Tone, req.Purpose)
	imageURL, err := h.AIClient.GenerateImage(c.UserContext(), aiclient.ImageRequest{Prompt: prompt})
	if err != nil {
		return h.respondErr(c, apperr.Wrap(apperr.CodeGenerationFailed, "image generation failed", err), apperr.CodeGenerationFailed)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, GenerateImageResponse{ImageURL: imageURL, Prompt: prompt})
}
