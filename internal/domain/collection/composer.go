package collection

import (
	"context"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/debt"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
	SourceEmpty     Source = "empty"
)

const (
	promptTemplate = "Gere uma mensagem curta, educada e profissional de cobrança para o WhatsApp. " +
		"Cliente: %s. Valor da dívida: %s. Vencimento: %s. " +
		"O tom deve ser amigável pois é um pequeno negócio. Não use emojis em excesso. " +
		"Apenas o texto da mensagem, sem aspas."
	fallbackTemplate = "Olá %s, notamos uma pendência de %s vencida em %s. Podemos combinar o pagamento?"
	emptyTemplate    = "Olá %s, lembramos da sua pendência de %s vencida em %s. Como podemos facilitar o pagamento?"
)

// TextGenerator turns a free-text prompt into generated text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Message struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

type Composer struct {
	generator TextGenerator
	logger    *slog.Logger
}

// NewComposer accepts a nil generator; every message then comes from the fallback template.
func NewComposer(generator TextGenerator, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewComposer, using default stderr handler")
	}
	return &Composer{
		generator: generator,
		logger:    logger.With(slog.String("component", "collectionComposer")),
	}
}

// Compose always returns a usable message. When c is nil the name stored on the debt is used.
func (m *Composer) Compose(ctx context.Context, d *debt.Debt, c *customer.Customer) Message {
	name := d.CustomerName
	if c != nil {
		name = c.Name
	}
	value := FormatBRL(d.Value)
	due := FormatDate(d.DueDate)
	logCtx := m.logger.With(slog.String("debtID", d.ID))

	if m.generator == nil {
		logCtx.DebugContext(ctx, "No text generator configured, using fallback template")
		return Message{Text: fmt.Sprintf(fallbackTemplate, name, value, due), Source: SourceFallback}
	}

	text, err := m.generate(ctx, BuildPrompt(name, value, due))
	if err != nil {
		logCtx.WarnContext(ctx, "Text generation failed, using fallback template", slog.Any("error", err))
		return Message{Text: fmt.Sprintf(fallbackTemplate, name, value, due), Source: SourceFallback}
	}

	text = cleanGenerated(text)
	if text == "" {
		logCtx.WarnContext(ctx, "Text generation returned no text, using reminder template")
		return Message{Text: fmt.Sprintf(emptyTemplate, name, value, due), Source: SourceEmpty}
	}

	logCtx.InfoContext(ctx, "Collection message generated")
	return Message{Text: text, Source: SourceGenerated}
}

func (m *Composer) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text generator panicked: %v", r)
		}
	}()
	return m.generator.GenerateText(ctx, prompt)
}

func BuildPrompt(name, value, due string) string {
	return fmt.Sprintf(promptTemplate, name, value, due)
}

func cleanGenerated(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"“”")
	return strings.TrimSpace(text)
}
