package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kenaxel/standfm2movie/api-gateway/utils"
	"github.com/kenaxel/standfm2movie/internal/apperr"
	"github.com/kenaxel/standfm2movie/internal/keywords"
	"github.com/kenaxel/standfm2movie/internal/stock"
)

// SearchRequest is accepted as JSON (POST) or query parameters (GET).
type SearchRequest struct {
	Query       string `json:"query" query:"query" validate:"max=200"`
	Count       int    `json:"count" query:"count" validate:"omitempty,min=1,max=30"`
	Source      string `json:"source" query:"source" validate:"omitempty,oneof=both pexels unsplash"`
	Orientation string `json:"orientation" query:"orientation" validate:"omitempty,oneof=landscape portrait square squarish"`
}

// ImageSearchResponse lists stock images.
type ImageSearchResponse struct {
	Images []stock.Result `json:"images"`
	Total  int            `json:"total"`
}

// VideoSearchResponse lists stock videos.
type VideoSearchResponse struct {
	Videos []stock.Result `json:"videos"`
	Total  int            `json:"total"`
}

// KeywordsRequest is the body of POST /keywords.
type KeywordsRequest struct {
	Text string `json:"text" validate:"required,max=100000"`
	TopN int    `json:"topN" validate:"omitempty,min=1,max=10"`
}

// KeywordsResponse is the classifier output.
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
	Query    string   `json:"query"`
}

func (h *ApplicationHandler) bindSearch(c *fiber.Ctx) (SearchRequest, bool, error) {
	var req SearchRequest
	if c.Method() == fiber.MethodGet {
		if err := c.QueryParser(&req); err != nil {
			return req, false, utils.RespondWithAPIError(c, fiber.StatusBadRequest, apperr.CodeInvalidRequest, "Cannot parse query parameters", nil)
		}
		if err := h.Validate.Struct(&req); err != nil {
			return req, false, utils.RespondWithAPIError(c, fiber.StatusBadRequest, apperr.CodeInvalidRequest,
				"Validation failed", utils.FormatValidationErrors(err))
		}
	} else if ok, err := h.bind(c, &req); !ok {
		return req, false, err
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return req, false, utils.RespondWithAPIError(c, fiber.StatusBadRequest, apperr.CodeMissingQuery, "query is required", nil)
	}
	return req, true, nil
}

func (h *ApplicationHandler) searchFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, stock.ErrMissingQuery) {
		return h.respondErr(c, apperr.Wrap(apperr.CodeMissingQuery, "query is required", err), apperr.CodeMissingQuery)
	}
	return h.respondErr(c, apperr.Wrap(apperr.CodeSearchFailed, "stock search failed", err), apperr.CodeSearchFailed)
}

// SearchImages godoc
// @Summary Search stock images
// @Description Searches Pexels and/or Unsplash. Sample results are returned for providers without an API key.
// @Tags search
// @Accept json
// @Produce json
// @Param query query string true "Search text"
// @Param count query int false "Number of results (1-30)"
// @Param source query string false "both, pexels or unsplash"
// @Param orientation query string false "landscape, portrait or square"
// @Success 200 {object} ImageSearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /images/search [get]
// @Router /images/search [post]
func (h *ApplicationHandler) SearchImages(c *fiber.Ctx) error {
	req, ok, err := h.bindSearch(c)
	if !ok {
		return err
	}

	q := stock.Query{Text: req.Query, Count: req.Count, Orientation: stock.ParseOrientation(req.Orientation)}
	results, err := h.Stock.Images(c.UserContext(), q, stock.ParseSelection(req.Source))
	if err != nil {
		return h.searchFailed(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, ImageSearchResponse{Images: results, Total: len(results)})
}

// SearchVideos godoc
// @Summary Search stock videos
// @Description Searches Pexels videos.
// @Tags search
// @Accept json
// @Produce json
// @Param query query string true "Search text"
// @Param count query int false "Number of results (1-30)"
// @Param orientation query string false "landscape, portrait or square"
// @Success 200 {object} VideoSearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /videos/search [get]
// @Router /videos/search [post]
func (h *ApplicationHandler) SearchVideos(c *fiber.Ctx) error {
	req, ok, err := h.bindSearch(c)
	if !ok {
		return err
	}

	q := stock.Query{Text: req.Query, Count: req.Count, Orientation: stock.ParseOrientation(req.Orientation)}
	results, err := h.Stock.VideoClips(c.UserContext(), q)
	if err != nil {
		return h.searchFailed(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, VideoSearchResponse{Videos: results, Total: len(results)})
}

// ExtractKeywords godoc
// @Summary Extract search keywords
// @Description Returns the most frequent content words of a text (stop words, numbers and one-character tokens removed).
// @Tags search
// @Accept json
// @Produce json
// @Param request body KeywordsRequest true "Text and number of keywords"
// @Success 200 {object} KeywordsResponse
// @Failure 400 {object} ErrorResponse
// @Router /keywords [post]
func (h *ApplicationHandler) ExtractKeywords(c *fiber.Ctx) error {
	var req KeywordsRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	words := keywords.Extract(req.Text, req.TopN)
	if words == nil {
		words = []string{}
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, KeywordsResponse{Keywords: words, Query: strings.Join(words, " ")})
}
