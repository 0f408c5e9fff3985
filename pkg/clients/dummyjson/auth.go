package dummyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/todonaut/todonaut/pkg/clients"
	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/types"
)

// upstream sessions stay short-lived; the browser cookie is session-scoped anyway
const tokenExpiryMins = 30

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
}

// Login authenticates against the upstream API and returns the bearer token.
// Upstream rejections come back as *clients.APIError with the raw body.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.Logger(ctx).WithField("service", "dummyjson")

	body := loginRequest{
		Username:      username,
		Password:      password,
		ExpiresInMins: tokenExpiryMins,
	}

	respBody, statusCode, err := c.sendRequest(ctx,
		http.MethodPost, c.baseURL+"/auth/login", body, nil, "backend.dummyjson.Login")
	if err != nil {
		log.WithError(err).Error("login request failed")
		return "", err
	}

	if statusCode < 200 || statusCode >= 300 {
		log.WithField("status", statusCode).Info("upstream rejected login")
		return "", &clients.APIError{StatusCode: statusCode, Body: respBody}
	}

	resp := loginResponse{}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	return token, nil
}

// Me resolves the user behind a token via the upstream whoami endpoint.
func (c *Client) Me(ctx context.Context, token string) (*types.RemoteUser, error) {
	respBody, statusCode, err := c.sendRequest(ctx,
		http.MethodGet, c.baseURL+"/auth/me", nil, bearer(token), "backend.dummyjson.Me")
	if err != nil {
		return nil, err
	}

	if statusCode < 200 || statusCode >= 300 {
		return nil, &clients.APIError{StatusCode: statusCode, Body: respBody}
	}

	user := &types.RemoteUser{}
	if err := json.Unmarshal(respBody, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user details: %w", err)
	}
	return user, nil
}
