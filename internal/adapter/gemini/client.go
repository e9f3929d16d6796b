package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

// Config holds the settings for a Gemini client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // empty uses the public endpoint
	Timeout time.Duration // per call; zero disables

	// Temperature overrides the prompt's sampling temperature when set.
	Temperature *float32
}

// Client implements forecast.Generator using the Gemini generateContent API
// with a JSON response schema.
type Client struct {
	models      *genai.Models
	model       string
	timeout     time.Duration
	temperature *float32
	logger      *slog.Logger
}

// NewClient creates a Gemini client. A missing API key is reported as
// KindServiceMisconfigured.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewError(domain.KindServiceMisconfigured, errors.New("gemini API key is required"))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, domain.NewError(domain.KindServiceMisconfigured, fmt.Errorf("create gemini client: %w", err))
	}

	return &Client{
		models:      client.Models,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends one structured-generation request and returns the response
// text. Failures come back as *domain.Error, except that a cancelled ctx is
// returned as ctx.Err().
func (c *Client) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	temperature := p.Temperature
	if c.temperature != nil {
		temperature = *c.temperature
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	}
	if p.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.SystemInstruction, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.model, genai.Text(p.Text), cfg)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		classified := classify(err)
		c.logger.Debug("gemini call failed",
			"model", c.model,
			"kind", domain.KindOf(classified),
			"duration", time.Since(start),
			"error", err,
		)
		return "", classified
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewError(domain.KindMalformedPayload, errors.New("gemini returned no text"))
	}
	c.logger.Debug("gemini call completed", "model", c.model, "duration", time.Since(start), "bytes", len(text))
	return text, nil
}

// classify maps a transport or API failure onto a domain.Kind. It runs once,
// here, so nothing downstream inspects raw error text.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewError(kindForStatus(apiErr.Code, apiErr.Message), err)
	}

	// A per-call timeout is treated like any other transport failure.
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewError(domain.KindNetworkUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.NewError(domain.KindNetworkUnavailable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return domain.NewError(domain.KindNetworkUnavailable, err)
	}
	if mentionsAPIKey(err.Error()) {
		return domain.NewError(domain.KindServiceMisconfigured, err)
	}
	return domain.NewError(domain.KindUnexpected, err)
}

func kindForStatus(code int, message string) domain.Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden || mentionsAPIKey(message):
		return domain.KindServiceMisconfigured
	case code >= 500:
		return domain.KindServiceUnavailable
	case code == http.StatusBadRequest:
		return domain.KindInvalidRequest
	default:
		return domain.KindUnexpected
	}
}

func mentionsAPIKey(s string) bool {
	return strings.Contains(strings.ToLower(s), "api key")
}
