package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

const summarizerSystemPrompt = "You summarize personal notes. " +
	"Produce 2-3 short bullet points capturing the key facts of the note. " +
	"Answer with the bullet points only, no preamble."

const defaultSummarizerModel = "gpt-4o-mini"

// chatCompleter is the slice of the OpenAI client the summarizer needs.
// Narrowed for testability.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// summarizerService implements SummarizerService on top of an
// OpenAI-compatible chat completion backend. When no API key is configured
// every call returns ErrSummarizerDisabled so the rest of the system can
// treat summaries as strictly optional.
type summarizerService struct {
	client chatCompleter
	model  string
	logger *logger.Logger
}

// NewSummarizerService constructs the summarizer from config. A custom
// BaseURL points the client at a self-hosted OpenAI-compatible backend.
func NewSummarizerService(cfg config.Summarizer, logger *logger.Logger) SummarizerService {
	s := &summarizerService{
		model:  cfg.Model,
		logger: logger,
	}
	if s.model == "" {
		s.model = defaultSummarizerModel
	}

	if cfg.APIKey == "" {
		logger.Warn().Msg("summarizer disabled: no API key configured")
		return s
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	s.client = openai.NewClientWithConfig(clientCfg)

	logger.Info().Str("model", s.model).Msg("summarizer initialized")
	return s
}

// Summarize produces a short bullet-point summary of text.
//
// Returns ErrSummarizerDisabled when no backend is configured, and
// ErrInvalidDataProvided for empty input.
func (s *summarizerService) Summarize(ctx context.Context, text string) (string, error) {
	log := logger.FromContext(ctx)

	if s.client == nil {
		return "", ErrSummarizerDisabled
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrInvalidDataProvided
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarizerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		log.Err(err).Msg("summarization call failed")
		return "", fmt.Errorf("summarization call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization backend returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
