package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
)

const (
	DefaultModel     = "gemini-2.0-flash"
	defaultMaxTokens = 8192
	temperature      = 0.2
)

type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	BaseURL   string
}

// Client is a ChatModel backed by the Gemini API in JSON response mode.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
	exec      *resilience.Executor
}

func New(ctx context.Context, cfg Config, exec *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: GEMINI_API_KEY is not set")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig(), nil)
	}

	httpOptions := genai.HTTPOptions{BaseURL: cfg.BaseURL}
	if cfg.Timeout > 0 {
		httpOptions.Timeout = &cfg.Timeout
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client:    client,
		model:     cfg.Model,
		maxTokens: int32(cfg.MaxTokens),
		exec:      exec,
	}, nil
}

func (c *Client) Model() string { return c.model }

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   c.maxTokens,
		Temperature:       genai.Ptr[float32](temperature),
		ResponseMIMEType:  "application/json",
	}

	text, err := resilience.Do(ctx, c.exec, "gemini.generate", func(ctx context.Context) (string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), config)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}, classify)
	if err != nil {
		return "", resilience.DomainError("gemini generate", err, statusOf)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response from model %s", c.model)
	}
	return text, nil
}

func classify(err error) resilience.ErrorClassification {
	return resilience.ClassifyStatus(err, statusOf)
}

func statusOf(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
