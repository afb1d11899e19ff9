// Package api implements the provider-dispatch request core: per-style
// request construction, the HTTP client, and the asynchronous runner that
// delivers outcomes back to the controlling context.
package api

import (
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/spuoss/aichat/internal/errors"
	"github.com/spuoss/aichat/internal/models"
	"github.com/spuoss/aichat/internal/providers"
)

// httpDoer is the slice of the HTTP client the api package needs.
// tls_client.HttpClient satisfies it; tests inject fakes.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs synchronous provider requests. It is safe for concurrent
// use; all mutable state lives in the transcript snapshot passed per call.
type Client struct {
	httpClient httpDoer
	registry   *providers.Registry
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithRegistry overrides the provider registry.
func WithRegistry(registry *providers.Registry) ClientOption {
	return func(c *Client) {
		c.registry = registry
	}
}

// WithHTTPClient overrides the HTTP transport. Used in tests.
func WithHTTPClient(doer httpDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient creates a Client with the fixed request timeout.
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		registry: providers.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(models.RequestTimeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Registry returns the client's provider registry.
func (c *Client) Registry() *providers.Registry {
	return c.registry
}

// Send submits the transcript to the named provider and returns the
// assistant's reply text. Configuration failures (unknown provider, empty
// key) return before any network call. Non-200 statuses surface the status
// code and raw body verbatim.
func (c *Client) Send(providerID, apiKey string, transcript []models.Message) (string, error) {
	cfg, err := c.registry.Lookup(providerID)
	if err != nil {
		return "", apierrors.NewConfigError(providerID, apierrors.ErrUnknownProvider.Error())
	}

	if apiKey == "" {
		return "", apierrors.NewConfigError(providerID, apierrors.ErrMissingAPIKey.Error())
	}

	req, err := BuildRequest(cfg, apiKey, transcript)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError(cfg.Endpoint, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkError(cfg.Endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apierrors.NewAPIError(resp.StatusCode, cfg.Endpoint, string(body))
	}

	return ExtractReply(cfg, body)
}
