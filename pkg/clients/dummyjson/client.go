/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dummyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"

	"github.com/todonaut/todonaut/pkg/config"
	"github.com/todonaut/todonaut/pkg/request"
	"github.com/todonaut/todonaut/pkg/request/httpclient"
)

// Client talks to the upstream identity/todo API.
type Client struct {
	httpClient heimdall.Doer
	baseURL    string
}

// NewClient builds the upstream client from config. The base URL must be set.
func NewClient(cfg config.UpstreamConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("missing required connection parameter for upstream backend: url")
	}

	client, err := httpclient.InitializeClient(
		"dummyjson",
		cfg.ConnectionPool,
		cfg.Resiliency,
		heimdall.NewRetrier(heimdall.NewConstantBackoff(100*time.Millisecond, 50*time.Millisecond)), 3,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http client: %w", err)
	}

	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(cfg.URL, "/"),
	}, nil
}

// sendRequest marshals body (if any), applies headers and executes the call.
func (c *Client) sendRequest(ctx context.Context, method, url string, body interface{},
	headers map[string]string, methodName string) ([]byte, int, error) {

	var requestBody []byte
	if body != nil {
		var err error
		requestBody, err = json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := request.NewRequest(ctx, method, url, requestBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	if headers == nil {
		headers = make(map[string]string)
	}
	headers["Content-Type"] = "application/json"
	headers["Accept"] = "application/json"
	req.SetHeaders(headers)

	return req.MakeRequest(c.httpClient, methodName, "dummyjson")
}

func bearer(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}
