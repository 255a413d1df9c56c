package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"truefeedback/internal/domain"
)

const DefaultTimeout = 10 * time.Second

// Provider is a generative-text backend.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	ErrNoProvider    = fmt.Errorf("%w: no suggestion provider configured", domain.ErrExternalService)
	ErrInvalidOutput = fmt.Errorf("%w: provider output is not three questions", domain.ErrExternalService)

	spaceRuns = regexp.MustCompile(` +`)
	quotes    = strings.NewReplacer(`"`, "", `'`, "", "“", "", "”", "", "‘", "", "’", "")
)

type Generator struct {
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
}

func NewGenerator(provider Provider, timeout time.Duration, logger *slog.Logger) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, timeout: timeout, logger: logger}
}

// Suggest asks the provider for a batch and returns the cleaned, still
// delimited string. Every failure, including a provider panic, is reported
// as an error wrapping domain.ErrExternalService.
func (g *Generator) Suggest(ctx context.Context) (content string, err error) {
	if g.provider == nil {
		return "", ErrNoProvider
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			content = ""
			err = fmt.Errorf("%w: provider panic: %v", domain.ErrExternalService, r)
		}
	}()

	raw, err := g.provider.Generate(ctx, Prompt())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: provider timed out after %s", domain.ErrExternalService, g.timeout)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	g.logger.Debug("suggestion provider output", "raw", raw)

	cleaned := Clean(raw)
	if !Valid(cleaned) {
		g.logger.Warn("rejected suggestion output", "cleaned", cleaned)
		return "", ErrInvalidOutput
	}
	return cleaned, nil
}

// Clean flattens newlines, collapses spaces and strips quote characters.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = quotes.Replace(text)
	return strings.TrimSpace(text)
}

// Valid reports whether cleaned splits into exactly three non-empty questions.
func Valid(cleaned string) bool {
	parts := strings.Split(cleaned, Separator)
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}
	return true
}
