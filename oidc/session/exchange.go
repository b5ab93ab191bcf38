package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"

	"github.com/jagatrajsingh2000/sso-test/oidc"
)

// CodeExchanger swaps an authorization code for a token. It is the only
// network suspension point in the callback path; implementations must honor
// ctx and report failures rather than panic.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (oidc.Token, error)
}

// exchangePath is the backend's code exchange endpoint, relative to its base
// URL. The trailing slash is part of the backend's route table.
const exchangePath = "/v1/auth/callback/"

// ExchangeClient exchanges an authorization code for a token via the
// backend's GET {base}/v1/auth/callback/?code={code} endpoint. The response
// is JSON carrying the token in one of the token, access_token or jwt fields;
// the first non-empty field in that order wins.
type ExchangeClient struct {
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// NewExchangeClient creates a client for the backend at baseURL.
// Supported options: WithLogger, WithHTTPClient
func NewExchangeClient(baseURL string, opt ...Option) (*ExchangeClient, error) {
	const op = "session.NewExchangeClient"
	if baseURL == "" {
		return nil, fmt.Errorf("%s: backend base URL is empty: %w", op, oidc.ErrInvalidParameter)
	}
	opts := getExchangeOpts(opt...)
	client := opts.withHTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	logger := opts.withLogger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExchangeClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		logger:  logger,
	}, nil
}

// exchangeResponse is the backend's response body. Which field carries the
// token varies across backend versions, so all three are accepted.
type exchangeResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	JWT         string `json:"jwt"`
}

// Exchange implements CodeExchanger.
func (c *ExchangeClient) Exchange(ctx context.Context, code string) (oidc.Token, error) {
	const op = "session.ExchangeClient.Exchange"
	if code == "" {
		return "", fmt.Errorf("%s: authorization code is empty: %w", op, oidc.ErrInvalidParameter)
	}
	exchangeURL := c.baseURL + exchangePath + "?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exchangeURL, nil)
	if err != nil {
		return "", fmt.Errorf("%s: unable to create exchange request for code %q: %w", op, code, ErrExchangeFailed)
	}

	c.logger.Debug("exchanging authorization code", "url", c.baseURL+exchangePath)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: exchange request for code %q failed: %v: %w", op, code, err, ErrExchangeFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: exchange for code %q returned status %d: %w", op, code, resp.StatusCode, ErrExchangeFailed)
	}

	var body exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%s: unable to decode exchange response for code %q: %w", op, code, ErrExchangeFailed)
	}
	for _, v := range []string{body.Token, body.AccessToken, body.JWT} {
		if v != "" {
			return oidc.Token(v), nil
		}
	}
	return "", fmt.Errorf("%s: exchange response for code %q carried no usable token field: %w", op, code, ErrExchangeFailed)
}
