package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
)

const (
	DefaultModel   = "llama3.1:8b"
	defaultTimeout = 120 * time.Second
	temperature    = 0.2
)

// Client talks to a local Ollama server through /api/chat.
type Client struct {
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
	exec       *resilience.Executor
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Client) { c.maxTokens = maxTokens }
}

func WithExecutor(exec *resilience.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

func New(baseURL, model string, opts ...Option) *Client {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
		exec:       resilience.NewExecutor(resilience.DefaultConfig(), nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format"`
	Options  chatOptions   `json:"options"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Complete asks the model for a JSON answer. Ollama's JSON mode constrains the
// output to valid JSON, which the assessment parser then unwraps.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream:  false,
		Format:  "json",
		Options: chatOptions{Temperature: temperature, NumPredict: c.maxTokens},
	}

	content, err := resilience.Do(ctx, c.exec, "ollama.chat", func(ctx context.Context) (string, error) {
		var response chatResponse
		if err := c.postJSON(ctx, "/api/chat", request, &response, "chat"); err != nil {
			return "", err
		}
		return strings.TrimSpace(response.Message.Content), nil
	}, resilience.ClassifyHTTP)
	if err != nil {
		return "", resilience.DomainError("ollama chat", err, resilience.StatusOf)
	}
	if content == "" {
		return "", fmt.Errorf("ollama chat: empty response from model %s", c.model)
	}
	return content, nil
}
