package homebox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/metrics"
)

// Response is a successful (2xx) reply from the inventory server.
// Value holds the decoded JSON document, or the raw text when the body
// was not JSON.
type Response struct {
	Status int
	Body   []byte
	Value  any
	json   bool
}

// IsJSON reports whether the body decoded as JSON.
func (r *Response) IsJSON() bool {
	return r.json
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Request performs an authenticated call to <base>/api/v1/<endpoint>.
//
// A 401 triggers exactly one re-authentication and one retry. Auth problems
// are reported as domain.ErrAuthFailed; any other failure is a
// *domain.APIError, which matches domain.ErrAPIFailed.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, query url.Values) (*Response, error) {
	if !c.EnsureTokenValid(ctx) {
		return nil, fmt.Errorf("%w: no valid token for %s %s", domain.ErrAuthFailed, method, endpoint)
	}

	resp, err := c.do(ctx, method, endpoint, body, query)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized {
		log := logger.FromContext(ctx)
		log.Warn(LogMsgTokenRejected, "method", method, "endpoint", endpoint)

		if !c.Authenticate(ctx) {
			return nil, fmt.Errorf("%w: re-authentication failed for %s %s", domain.ErrAuthFailed, method, endpoint)
		}
		log.Info(LogMsgRetryAfterReauth, "method", method, "endpoint", endpoint)

		resp, err = c.do(ctx, method, endpoint, body, query)
		if err != nil {
			return nil, err
		}
		if resp.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: token rejected after re-authentication for %s %s", domain.ErrAuthFailed, method, endpoint)
		}
	}

	if resp.Status < 200 || resp.Status >= 300 {
		return nil, &domain.APIError{
			Method:   method,
			Endpoint: endpoint,
			Status:   resp.Status,
			Detail:   excerpt(resp.Body),
		}
	}

	return resp, nil
}

// do performs a single HTTP exchange. Only transport-level problems are
// returned as errors; status handling is left to the caller.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, query url.Values) (*Response, error) {
	log := logger.FromContext(ctx)
	label := metrics.EndpointLabel(endpoint)
	apiErr := func(err error) error {
		metrics.APIRequests.WithLabelValues(method, label, metrics.StatusTransport).Inc()
		return &domain.APIError{Method: method, Endpoint: endpoint, Err: err}
	}

	target := c.baseURL + APIPrefix + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apiErr(fmt.Errorf("encode body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apiErr(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderAuthorization, c.authorizationHeader())

	log.Debug(LogMsgAPIRequest, "method", method, "url", target)

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apiErr(err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apiErr(fmt.Errorf("read body: %w", err))
	}

	metrics.APIRequests.WithLabelValues(method, label, strconv.Itoa(httpResp.StatusCode)).Inc()
	metrics.APIRequestDuration.WithLabelValues(method, label).Observe(time.Since(start).Seconds())
	log.Debug(LogMsgAPIResponse, "status", httpResp.StatusCode, "body", excerpt(raw))

	resp := &Response{Status: httpResp.StatusCode, Body: raw}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		if resp.Status >= 200 && resp.Status < 300 {
			log.Warn(LogMsgNonJSONResponse, "endpoint", endpoint, "body", excerpt(raw))
		}
		resp.Value = string(raw)
		return resp, nil
	}
	resp.Value = value
	resp.json = true
	return resp, nil
}
