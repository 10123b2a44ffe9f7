package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StaticProvider serves a personal token stored in the config file,
// bypassing the session endpoint entirely.
type StaticProvider struct {
	Token string
}

func (p *StaticProvider) Fetch(ctx context.Context) (string, error) {
	if p.Token == "" {
		return "", fmt.Errorf("no token configured")
	}
	return p.Token, nil
}

// SessionProvider fetches the bearer token from the local session
// endpoint, which fronts the identity provider. Both historical body
// shapes are accepted: {"accessToken": ...} and {"token": ...}.
type SessionProvider struct {
	URL  string
	http *http.Client
}

func NewSessionProvider(url string, timeout time.Duration) *SessionProvider {
	return &SessionProvider{
		URL:  url,
		http: &http.Client{Timeout: timeout},
	}
}

func (p *SessionProvider) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"accessToken"`
		Token       string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	tok := body.AccessToken
	if tok == "" {
		tok = body.Token
	}
	if tok == "" {
		return "", fmt.Errorf("token endpoint returned no token")
	}
	return tok, nil
}
