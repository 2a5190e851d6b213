package ganjing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"gjwuploader/internal/core/domain"
)

// EnsureUploadToken returns the cached upload token, acquiring a fresh one
// when none exists or the recorded expiry has passed. The mutex is held
// across the acquisition call, so concurrent workflow invocations that
// race past an expired token serialize here and the second one reuses the
// token the first fetched instead of issuing a redundant call.
func (c *Client) EnsureUploadToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.uploadToken.Valid(c.now()) {
		return c.uploadToken.Value, nil
	}

	token, err := c.fetchUploadToken(ctx, c.accessToken)
	if err != nil {
		return "", err
	}
	c.uploadToken.Value = token
	c.uploadToken.ExpiresAt = c.now().Add(c.tokenTTL)
	c.logger.Debug().Time("expires_at", c.uploadToken.ExpiresAt).Msg("upload token acquired")
	return token, nil
}

func (c *Client) fetchUploadToken(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/video/get-upload-token", nil)
	if err != nil {
		return "", err
	}
	// Token endpoint authenticates with the raw access token, no Bearer
	// prefix.
	req.Header.Set("Authorization", accessToken)

	body, err := c.send(req, "get upload token")
	if err != nil {
		return "", err
	}
	if err := checkAPIError(body); err != nil {
		return "", err
	}
	return parseUploadToken(body)
}

// RefreshAccessToken exchanges a refresh token for new access credentials
// and adopts the new access token for subsequent calls.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*domain.AccessCredentials, error) {
	payload, err := json.Marshal(map[string]string{"token": refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/auth/refresh-token", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.currentAccessToken())

	body, err := c.send(req, "refresh access token")
	if err != nil {
		return nil, err
	}
	if err := checkAPIError(body); err != nil {
		return nil, err
	}
	creds, err := parseAccessCredentials(body)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.accessToken = creds.Token
	c.mu.Unlock()
	return creds, nil
}
