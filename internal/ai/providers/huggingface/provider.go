package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/yildizm/sentimoji/internal/ai"
)

// maxBodySize bounds how much of a response is read
const maxBodySize = 1 << 20

// Provider calls the Hugging Face text-classification endpoint
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates a provider. A missing API key is not an error here; it is
// reported by every Classify call instead.
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError(ProviderName, "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Model() string {
	return p.config.Model
}

func (p *Provider) ValidateConfig() error {
	if err := p.config.Validate(); err != nil {
		return err
	}
	return p.config.ValidateCredential()
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Classify sends a single request; there is no retry and no cache.
func (p *Provider) Classify(ctx context.Context, req *ai.AnalysisRequest) (ai.Classifications, error) {
	if err := p.config.ValidateCredential(); err != nil {
		return nil, err
	}

	if req == nil || strings.TrimSpace(req.Text) == "" {
		return nil, ai.NewEmptyInputError("")
	}

	body, err := json.Marshal(ClassificationRequest{Inputs: req.Text})
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", ProviderName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", ProviderName, err)
	}
	p.setHeaders(httpReq, req.ID)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleErrorResponse(resp.StatusCode, payload)
	}

	result, err := decodeClassifications(payload)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeMalformed, "unexpected response from model", ProviderName, err)
	}

	return result, nil
}

// endpoint is {base}/{route}/models/{model}
func (p *Provider) endpoint() string {
	return p.baseURL.JoinPath(p.config.Route, "models", p.config.Model).String()
}

func (p *Provider) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
}

// transportError classifies a failed round trip. The *url.Error wrapper is
// dropped so users see the cause rather than the method and URL.
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", ProviderName, err)
	}
	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", ProviderName, err)
}

func handleErrorResponse(status int, body []byte) error {
	message := fmt.Sprintf("request failed with status %d", status)

	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		message = errorResp.Error
	}

	var errType ai.ErrorType
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ai.ErrTypeAuthentication
	case http.StatusTooManyRequests:
		errType = ai.ErrTypeRateLimit
	case http.StatusServiceUnavailable:
		errType = ai.ErrTypeModelUnavailable
	case http.StatusGatewayTimeout:
		errType = ai.ErrTypeTimeout
	default:
		errType = ai.ErrTypeProvider
	}

	pe := ai.NewProviderError(errType, message, ProviderName)
	pe.StatusCode = status
	if errorResp.EstimatedTime > 0 {
		pe.RetryAfter = int(math.Ceil(errorResp.EstimatedTime))
	}
	return pe
}
