package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/llm/anthropic"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/llm/gemini"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/llm/ollama"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// DefaultModels is the model used per provider when none is configured.
var DefaultModels = map[string]string{
	ProviderGemini:    gemini.DefaultModel,
	ProviderAnthropic: anthropic.DefaultModel,
	ProviderOllama:    ollama.DefaultModel,
}

// AvailableModels lists known-good models per provider. Other model names are
// passed through to the provider unchecked.
var AvailableModels = map[string][]string{
	ProviderGemini:    {"gemini-2.0-flash", "gemini-2.5-flash", "gemini-2.5-pro"},
	ProviderAnthropic: {"claude-sonnet-4-5-20250929", "claude-opus-4-1-20250805", "claude-3-5-haiku-20241022"},
	ProviderOllama:    {"llama3.1:8b", "qwen2.5:14b", "mistral-nemo"},
}

type Config struct {
	Provider        string
	Model           string
	MaxTokens       int
	Timeout         time.Duration
	AnthropicAPIKey string
	GeminiAPIKey    string
	OllamaURL       string
}

// Model is a ChatModel that can report which model it is bound to.
type Model interface {
	ports.ChatModel
	Model() string
}

func Providers() []string {
	out := make([]string, 0, len(DefaultModels))
	for provider := range DefaultModels {
		out = append(out, provider)
	}
	sort.Strings(out)
	return out
}

// New builds the configured backend. A missing API key is an ErrInvalidInput.
func New(ctx context.Context, cfg Config, exec *resilience.Executor) (Model, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}, exec)
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "create gemini model", err)
		}
		return client, nil
	case ProviderAnthropic:
		client, err := anthropic.New(anthropic.Config{
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}, exec)
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "create anthropic model", err)
		}
		return client, nil
	case ProviderOllama:
		return ollama.New(cfg.OllamaURL, cfg.Model,
			ollama.WithTimeout(cfg.Timeout),
			ollama.WithMaxTokens(cfg.MaxTokens),
			ollama.WithExecutor(exec),
		), nil
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "create model",
			fmt.Errorf("unknown provider %q (want one of %s)", cfg.Provider, strings.Join(Providers(), ", ")))
	}
}
