package onet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
)

const (
	DefaultBaseURL  = "https://services.onetcenter.org/ws"
	defaultTimeout  = 30 * time.Second
	defaultRateRPS  = 5
	maxResponseSize = 8 << 20
)

var categoryEndpoints = map[domain.OnetCategory]string{
	domain.CategoryTasks:                  "tasks",
	domain.CategorySkills:                 "skills",
	domain.CategoryKnowledge:              "knowledge",
	domain.CategoryAbilities:              "abilities",
	domain.CategoryWorkActivities:         "work_activities",
	domain.CategoryDetailedWorkActivities: "detailed_work_activities",
	domain.CategoryTechnologySkills:       "technology_skills",
	domain.CategoryWorkContext:            "work_context",
	domain.CategoryWorkStyles:             "work_styles",
	domain.CategoryWorkValues:             "work_values",
	domain.CategoryInterests:              "interests",
	domain.CategoryJobZones:               "job_zone",
	domain.CategoryEducation:              "education",
}

type Config struct {
	BaseURL  string
	Username string
	Password string
	// RateLimitRPS caps outbound requests; zero uses the default.
	RateLimitRPS float64
	Timeout      time.Duration
}

// Client reads occupation data from O*NET Web Services.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
	exec       *resilience.Executor
}

func New(cfg Config, exec *resilience.Executor) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateRPS
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig(), nil)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1),
		exec:       exec,
	}
}

func (c *Client) FetchOccupation(ctx context.Context, soc string) (domain.Occupation, error) {
	var summary struct {
		Code        string `json:"code"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.get(ctx, "occupation", "online/occupations/"+soc, &summary); err != nil {
		return domain.Occupation{}, err
	}
	code := summary.Code
	if code == "" {
		code = soc
	}
	return domain.Occupation{
		SOCCode:     code,
		Title:       strings.TrimSpace(summary.Title),
		Description: strings.TrimSpace(summary.Description),
	}, nil
}

// FetchCategory returns the items of one category. Categories without an
// O*NET endpoint yield no items.
func (c *Client) FetchCategory(ctx context.Context, soc string, category domain.OnetCategory) ([]domain.OnetItem, error) {
	endpoint, ok := categoryEndpoints[category]
	if !ok {
		return nil, nil
	}
	var payload map[string]json.RawMessage
	if err := c.get(ctx, string(category), "online/occupations/"+soc+"/"+endpoint, &payload); err != nil {
		return nil, err
	}
	elements, err := unwrapElements(payload)
	if err != nil {
		return nil, fmt.Errorf("onet %s: %w", category, err)
	}
	return toItems(elements), nil
}

func (c *Client) get(ctx context.Context, operation, path string, out any) error {
	_, err := resilience.Do(ctx, c.exec, "onet."+operation, func(ctx context.Context) (struct{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, c.doGet(ctx, operation, path, out)
	}, resilience.ClassifyHTTP)
	if err != nil {
		return resilience.DomainError("onet "+operation, err, resilience.StatusOf)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, operation, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return fmt.Errorf("create onet %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("onet %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resilience.NewStatusError("onet", operation, resp)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("decode onet %s response: %w", operation, err)
	}
	return nil
}
