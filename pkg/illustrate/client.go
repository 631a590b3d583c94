// Package illustrate requests generated images for highlighted passages
// from the illustration backend.
package illustrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Error types for illustration requests.
var (
	ErrUpstream        = errors.New("illustration backend error")
	ErrInvalidResponse = errors.New("invalid illustration response")
)

const (
	DefaultBaseURL          = "http://localhost:8000"
	DefaultEnvisionPath     = "/api/envision"
	DefaultImageURLTemplate = "http://localhost:8000/api/images/{image_id}"
	DefaultTimeout          = 2 * time.Minute

	imageIDPlaceholder = "{image_id}"
	maxErrorBody       = 512
)

// Illustrator produces an image URL for a passage and its surrounding context.
type Illustrator interface {
	Illustrate(ctx context.Context, passage, surrounding string) (string, error)
}

// HTTPDoer abstracts HTTP client operations.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Zero fields take the defaults.
type Options struct {
	BaseURL          string
	EnvisionPath     string
	ImageURLTemplate string
	Timeout          time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.EnvisionPath == "" {
		o.EnvisionPath = DefaultEnvisionPath
	}
	if o.ImageURLTemplate == "" {
		o.ImageURLTemplate = DefaultImageURLTemplate
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Client talks to the envision endpoint over HTTP. Requests are not retried.
type Client struct {
	opts       Options
	httpClient HTTPDoer
}

// NewClient creates a Client with an instrumented HTTP transport.
func NewClient(opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   opts.Timeout,
		},
	}
}

// NewClientWithDoer creates a Client sending requests through httpClient.
func NewClientWithDoer(opts Options, httpClient HTTPDoer) *Client {
	return &Client{opts: opts.withDefaults(), httpClient: httpClient}
}

type envisionRequest struct {
	Passage string `json:"passage"`
	Context string `json:"context"`
}

// Response is the body returned by the envision endpoint.
type Response struct {
	ImageID      string `json:"image_id"`
	ImggenPrompt string `json:"imggen_prompt"`
	Status       string `json:"status"`
}

// Envision posts the passage and returns the decoded response.
func (c *Client) Envision(ctx context.Context, passage, surrounding string) (Response, error) {
	body, err := json.Marshal(envisionRequest{Passage: passage, Context: surrounding})
	if err != nil {
		return Response{}, err
	}

	url := strings.TrimRight(c.opts.BaseURL, "/") + c.opts.EnvisionPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("envision request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Response{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.ImageID == "" {
		return Response{}, fmt.Errorf("%w: missing image_id", ErrInvalidResponse)
	}
	return out, nil
}

// Illustrate posts the passage and returns the URL of the generated image.
func (c *Client) Illustrate(ctx context.Context, passage, surrounding string) (string, error) {
	resp, err := c.Envision(ctx, passage, surrounding)
	if err != nil {
		return "", err
	}
	return c.ImageURL(resp.ImageID), nil
}

// ImageURL expands the image URL template for id.
func (c *Client) ImageURL(id string) string {
	return strings.ReplaceAll(c.opts.ImageURLTemplate, imageIDPlaceholder, id)
}
