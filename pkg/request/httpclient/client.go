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

package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/hystrix"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
)

// ConnectionPoolConfig tunes the shared transport for a backend client.
// Zero values fall back to sane defaults.
type ConnectionPoolConfig struct {
	MaxIdleConnections        int `mapstructure:"maxIdleConnections"`
	MaxIdleConnectionsPerHost int `mapstructure:"maxIdleConnectionsPerHost"`
	IdleConnectionTimeoutInMs int `mapstructure:"idleConnectionTimeoutInMs"`
	TimeoutInMs               int `mapstructure:"timeoutInMs"`
}

// HystrixResiliencyConfig tunes the circuit breaker for a backend client.
// Zero values fall back to sane defaults.
type HystrixResiliencyConfig struct {
	MaxConcurrentRequests  int `mapstructure:"maxConcurrentRequests"`
	ErrorPercentThreshold  int `mapstructure:"errorPercentThreshold"`
	SleepWindowInMs        int `mapstructure:"sleepWindowInMs"`
	RequestVolumeThreshold int `mapstructure:"requestVolumeThreshold"`
	TimeoutInMs            int `mapstructure:"timeoutInMs"`
}

const (
	defaultMaxIdleConnections        = 100
	defaultMaxIdleConnectionsPerHost = 10
	defaultIdleConnectionTimeoutInMs = 90000
	defaultTimeoutInMs               = 30000

	defaultMaxConcurrentRequests  = 100
	defaultErrorPercentThreshold  = 25
	defaultSleepWindowInMs        = 10000
	defaultRequestVolumeThreshold = 10
)

// InitializeClient builds a hystrix-wrapped heimdall client for the named
// backend. The underlying transport is instrumented for opentracing so each
// outbound call shows up as a client span.
func InitializeClient(
	backendName string,
	poolCfg ConnectionPoolConfig,
	resiliencyCfg HystrixResiliencyConfig,
	retrier heimdall.Retriable,
	retryCount int,
	tlsConfig *tls.Config,
) (*hystrix.Client, error) {
	pool := poolCfg.withDefaults()
	resiliency := resiliencyCfg.withDefaults()

	transport := &http.Transport{
		MaxIdleConns:        pool.MaxIdleConnections,
		MaxIdleConnsPerHost: pool.MaxIdleConnectionsPerHost,
		IdleConnTimeout:     time.Duration(pool.IdleConnectionTimeoutInMs) * time.Millisecond,
		TLSClientConfig:     tlsConfig,
	}

	httpClient := &http.Client{
		Transport: &nethttp.Transport{RoundTripper: transport},
		Timeout:   time.Duration(pool.TimeoutInMs) * time.Millisecond,
	}

	opts := []hystrix.Option{
		hystrix.WithHTTPClient(httpClient),
		hystrix.WithCommandName(backendName),
		hystrix.WithHTTPTimeout(time.Duration(pool.TimeoutInMs) * time.Millisecond),
		hystrix.WithHystrixTimeout(time.Duration(resiliency.TimeoutInMs) * time.Millisecond),
		hystrix.WithMaxConcurrentRequests(resiliency.MaxConcurrentRequests),
		hystrix.WithErrorPercentThreshold(resiliency.ErrorPercentThreshold),
		hystrix.WithSleepWindow(resiliency.SleepWindowInMs),
		hystrix.WithRequestVolumeThreshold(resiliency.RequestVolumeThreshold),
	}
	if retrier != nil {
		opts = append(opts, hystrix.WithRetrier(retrier), hystrix.WithRetryCount(retryCount))
	}

	return hystrix.NewClient(opts...), nil
}

func (c ConnectionPoolConfig) withDefaults() ConnectionPoolConfig {
	if c.MaxIdleConnections <= 0 {
		c.MaxIdleConnections = defaultMaxIdleConnections
	}
	if c.MaxIdleConnectionsPerHost <= 0 {
		c.MaxIdleConnectionsPerHost = defaultMaxIdleConnectionsPerHost
	}
	if c.IdleConnectionTimeoutInMs <= 0 {
		c.IdleConnectionTimeoutInMs = defaultIdleConnectionTimeoutInMs
	}
	if c.TimeoutInMs <= 0 {
		c.TimeoutInMs = defaultTimeoutInMs
	}
	return c
}

func (c HystrixResiliencyConfig) withDefaults() HystrixResiliencyConfig {
	if c.MaxConcurrentRequests <= 0 {
		c.MaxConcurrentRequests = defaultMaxConcurrentRequests
	}
	if c.ErrorPercentThreshold <= 0 {
		c.ErrorPercentThreshold = defaultErrorPercentThreshold
	}
	if c.SleepWindowInMs <= 0 {
		c.SleepWindowInMs = defaultSleepWindowInMs
	}
	if c.RequestVolumeThreshold <= 0 {
		c.RequestVolumeThreshold = defaultRequestVolumeThreshold
	}
	if c.TimeoutInMs <= 0 {
		c.TimeoutInMs = defaultTimeoutInMs
	}
	return c
}
