package genai

import (
	"context"
	"fmt"
	"log/slog"

	"debt-ledger/internal/config"
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/pkg/apperrors"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator produces collection messages with a Gemini model.
type Generator struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

var _ collection.TextGenerator = (*Generator)(nil)

func NewGenerator(ctx context.Context, cfg config.GenAIConfig, logger *slog.Logger) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: genai api key is empty", apperrors.ErrInvalidArgument)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGenerator(client.Models, cfg.Model, logger), nil
}

func newGenerator(models contentGenerator, model string, logger *slog.Logger) *Generator {
	if model == "" {
		model = defaultModel
	}
	return &Generator{
		models: models,
		model:  model,
		logger: logger.With("component", "GeminiGenerator"),
	}
}

func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", apperrors.WrapRemoteError(err, "text generation failed")
	}
	if resp == nil {
		return "", nil
	}
	text := resp.Text()
	g.logger.DebugContext(ctx, "Text generated", slog.String("model", g.model), slog.Int("length", len(text)))
	return text, nil
}
