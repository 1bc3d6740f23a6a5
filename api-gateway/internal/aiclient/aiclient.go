// Package aiclient wraps the OpenAI endpoints the gateway uses: Whisper
// transcription, chat completion and image generation.
package aiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kenaxel/standfm2movie/internal/captions"
)

// ErrNoAPIKey is returned by New when OPENAI_API_KEY is empty.
var ErrNoAPIKey = errors.New("aiclient: OpenAI API key not configured")

// ErrEmptyResponse is returned when OpenAI answers without content.
var ErrEmptyResponse = errors.New("aiclient: empty response")

// DefaultLanguage is the Whisper language hint; stand.fm is Japanese.
const DefaultLanguage = "ja"

// Config selects the models and endpoint.
type Config struct {
	APIKey       string
	BaseURL      string
	ChatModel    string
	WhisperModel string
	ImageModel   string
	Language     string
}

// AIClient talks to OpenAI.
type AIClient struct {
	api          *openai.Client
	chatModel    string
	whisperModel string
	imageModel   string
	language     string
}

// Transcription is the verbose Whisper output converted to caption segments.
type Transcription struct {
	Text     string
	Language string
	Duration float64
	Segments []captions.Segment
}

// ChatRequest is one system+user completion.
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// ImageRequest is one image generation.
type ImageRequest struct {
	Prompt string
	Size   string
}

// New creates and returns a new AIClient.
func New(cfg Config) (*AIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	c := &AIClient{
		api:          openai.NewClientWithConfig(clientConfig),
		chatModel:    cfg.ChatModel,
		whisperModel: cfg.WhisperModel,
		imageModel:   cfg.ImageModel,
		language:     cfg.Language,
	}
	if c.chatModel == "" {
		c.chatModel = openai.GPT4
	}
	if c.whisperModel == "" {
		c.whisperModel = openai.Whisper1
	}
	if c.imageModel == "" {
		c.imageModel = openai.CreateImageModelDallE3
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	return c, nil
}

// Transcribe sends the audio file at path to Whisper and returns the text
// with its segment timestamps.
func (c *AIClient) Transcribe(ctx context.Context, path string) (*Transcription, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: path,
		Language: c.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription error: %w", err)
	}

	t := &Transcription{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: make([]captions.Segment, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		t.Segments = append(t.Segments, captions.Segment{Text: text, StartTime: s.Start, EndTime: s.End})
	}
	return t, nil
}

// Chat runs one completion and returns the first choice.
func (c *AIClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage returns the URL of one generated image.
func (c *AIClient) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	size := req.Size
	if size == "" {
		size = openai.CreateImageSize1792x1024
	}
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           size,
		Quality:        openai.CreateImageQualityStandard,
		Style:          openai.CreateImageStyleNatural,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("image generation error: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}
	return resp.Data[0].URL, nil
}
