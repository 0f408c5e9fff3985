package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/todonaut/todonaut/pkg/logger"
)

// Request wraps an outbound HTTP request to a backend service.
type Request struct {
	req *http.Request
}

// NewRequest builds a request bound to ctx. body may be nil.
func NewRequest(ctx context.Context, method, url string, body []byte) (*Request, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	return &Request{req: req}, nil
}

// SetHeaders applies the given headers, replacing any existing values.
func (r *Request) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		r.req.Header.Set(key, value)
	}
}

// MakeRequest executes the request through the given client and returns the
// response body and status code. The call is traced under methodName; errors
// are returned for transport failures only, non-2xx statuses are the caller's
// concern.
func (r *Request) MakeRequest(client heimdall.Doer, methodName, backend string) ([]byte, int, error) {
	ctx := r.req.Context()
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"method":  methodName,
		"backend": backend,
	})

	req, ht := nethttp.TraceRequest(opentracing.GlobalTracer(), r.req,
		nethttp.OperationName(methodName))
	defer ht.Finish()

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		log.WithError(err).Error("backend request failed")
		return nil, 0, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("failed to read backend response body")
		return nil, resp.StatusCode, err
	}

	log.WithFields(logrus.Fields{
		"status":     resp.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
	}).Debug("backend request completed")

	return responseBody, resp.StatusCode, nil
}
