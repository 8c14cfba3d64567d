package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	canvas "github.com/goliatone/go-auth-canvas"
)

const maxProfileBytes = 1 << 20

// Config holds identity service settings.
type Config struct {
	// IdentityURL is the scheme and host of the identity service.
	IdentityURL string

	HTTPClient *http.Client
}

// Provider loads canvas user profiles from the identity service.
type Provider struct {
	config     Config
	httpClient *http.Client
}

// New creates a new identity provider.
func New(cfg Config) *Provider {
	cfg.IdentityURL = strings.TrimRight(strings.TrimSpace(cfg.IdentityURL), "/")
	if cfg.IdentityURL == "" {
		cfg.IdentityURL = canvas.DefaultIdentityURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Provider{
		config:     cfg,
		httpClient: client,
	}
}

// FromConfig builds a provider for the identity URL in cfg.
func FromConfig(cfg canvas.Config, client *http.Client) *Provider {
	return New(Config{IdentityURL: cfg.IdentityURL, HTTPClient: client})
}

// Name returns the provider name used in errors.
func (p *Provider) Name() string {
	return "salesforce"
}

// IdentityURL returns the profile URL for the given user. The token travels
// in the query string, so the result must never be logged.
func (p *Provider) IdentityURL(organizationID, userID, accessToken string) string {
	params := url.Values{
		"format":      {"json"},
		"oauth_token": {accessToken},
	}
	return p.config.IdentityURL + "/id/" + url.PathEscape(organizationID) + "/" + url.PathEscape(userID) + "?" + params.Encode()
}

// LoadProfile implements canvas.ProfileLoader. Only a 200 response with a
// JSON object body is accepted.
func (p *Provider) LoadProfile(ctx context.Context, organizationID, userID, accessToken string) (canvas.Profile, error) {
	if organizationID == "" || userID == "" || accessToken == "" {
		return nil, p.providerError(0, "invalid_request", "organization, user and token are required", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.IdentityURL(organizationID, userID, accessToken), nil)
	if err != nil {
		return nil, p.providerError(0, "invalid_request", "failed to build identity request", stripURL(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, p.providerError(0, "transport_error", "identity request failed", stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes))
	if err != nil {
		return nil, p.providerError(resp.StatusCode, "transport_error", "failed to read identity response", err)
	}

	if resp.StatusCode != http.StatusOK {
		code, description := apiErrorMessage(body)
		return nil, p.providerError(resp.StatusCode, code, description, nil)
	}

	var profile canvas.Profile
	if err := json.Unmarshal(body, &profile); err != nil || profile == nil {
		return nil, p.providerError(resp.StatusCode, "invalid_response", "failed to decode identity response", err)
	}

	return profile, nil
}

type identityAPIError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"errorCode"`
	Message          string `json:"message"`
}

func apiErrorMessage(body []byte) (string, string) {
	var single identityAPIError
	if err := json.Unmarshal(body, &single); err == nil {
		if code, msg := single.normalize(); msg != "" {
			return code, msg
		}
	}

	var list []identityAPIError
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		if code, msg := list[0].normalize(); msg != "" {
			return code, msg
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "", "identity request failed"
	}

	return "", msg
}

func (e identityAPIError) normalize() (string, string) {
	code := e.Error
	if code == "" {
		code = e.ErrorCode
	}
	msg := e.ErrorDescription
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = code
	}
	return code, msg
}

// stripURL drops the request URL from transport errors since it carries the
// access token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

func (p *Provider) providerError(status int, code, description string, err error) *canvas.ProviderError {
	return &canvas.ProviderError{
		Provider:    p.Name(),
		Operation:   "identity",
		Status:      status,
		Code:        code,
		Description: description,
		Err:         err,
	}
}

var _ canvas.ProfileLoader = (*Provider)(nil)
