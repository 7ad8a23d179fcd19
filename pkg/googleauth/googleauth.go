// Package googleauth verifies Google-issued ID tokens against the configured
// OAuth client id using Google's tokeninfo endpoint.
package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	defaultTimeout      = 5 * time.Second
)

// ErrNotConfigured is returned when no client id is configured. Verification
// fails closed rather than being skipped.
var ErrNotConfigured = errors.New("google client id not configured")

// ErrInvalidToken is returned for assertions that do not verify: wrong
// audience, missing email, or rejected by the tokeninfo endpoint.
var ErrInvalidToken = errors.New("invalid google id token")

// Config holds verifier settings. TokenInfoURL is overridable for tests.
type Config struct {
	ClientID     string
	TokenInfoURL string
	Timeout      time.Duration
}

// Verifier checks Google ID tokens.
type Verifier struct {
	config     Config
	httpClient *http.Client
}

// NewVerifier creates a new Verifier. ClientID may be empty, in which case
// every Verify call returns ErrNotConfigured.
func NewVerifier(config Config) *Verifier {
	if config.TokenInfoURL == "" {
		config.TokenInfoURL = defaultTokenInfoURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	return &Verifier{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Claims are the identity claims extracted from a verified ID token.
type Claims struct {
	Email   string
	Name    string
	Picture string
}

type tokenInfoResponse struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

// Verify checks the ID token's signature and audience via the tokeninfo
// endpoint and returns its identity claims.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	if v.config.ClientID == "" {
		return nil, ErrNotConfigured
	}

	endpoint := v.config.TokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokeninfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo returned status %d", ErrInvalidToken, resp.StatusCode)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo response: %w", err)
	}

	if info.Aud != v.config.ClientID {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	name := info.Name
	if name == "" {
		name = info.GivenName
	}
	return &Claims{
		Email:   info.Email,
		Name:    name,
		Picture: info.Picture,
	}, nil
}
