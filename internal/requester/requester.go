// Package requester sends single-shot HTTP calls to one Cinescope service and
// enforces the expected-status contract on every response.
package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

type Request struct {
	Method   string
	Endpoint string
	// Body is sent as-is when it is []byte, otherwise encoded as JSON.
	Body    any
	Query   url.Values
	Headers map[string]string
	// Expect lists the accepted status codes; empty means 200.
	Expect []int
	// Into, when set, receives the decoded JSON response. Values with a
	// Validate() error method are validated after decoding.
	Into  any
	Quiet bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

type Requester struct {
	session *Session
	baseURL string
	logger  *slog.Logger
}

func New(session *Session, baseURL string, logger *slog.Logger) *Requester {
	return &Requester{
		session: session,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (r *Requester) Session() *Session {
	return r.session
}

func (r *Requester) BaseURL() string {
	return r.baseURL
}

func (r *Requester) URL(endpoint string) string {
	return r.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

func (r *Requester) Send(ctx context.Context, req Request) (*Response, error) {
	expected := normalizeExpected(req.Expect)

	target := r.URL(req.Endpoint)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.Endpoint, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header = r.session.headersWith(req.Headers)

	start := time.Now()

	httpRes, err := r.session.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, target, err)
	}
	defer httpRes.Body.Close()

	resBody, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", req.Method, target, err)
	}

	res := &Response{
		StatusCode: httpRes.StatusCode,
		Header:     httpRes.Header,
		Body:       resBody,
	}

	if !req.Quiet {
		r.logExchange(ctx, httpReq, body, res, time.Since(start))
	}

	if !slices.Contains(expected, res.StatusCode) {
		return res, newStatusError(req.Method, target, res.StatusCode, expected, resBody)
	}

	if req.Into != nil {
		if err := res.JSON(req.Into); err != nil {
			return res, fmt.Errorf("decode %s %s response: %w", req.Method, req.Endpoint, err)
		}

		if v, ok := req.Into.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return res, fmt.Errorf("%s %s response: %w", req.Method, req.Endpoint, err)
			}
		}
	}

	return res, nil
}

func (r *Requester) logExchange(ctx context.Context, req *http.Request, body []byte, res *Response, elapsed time.Duration) {
	level := slog.LevelInfo
	if res.StatusCode >= http.StatusBadRequest {
		level = slog.LevelWarn
	}

	r.logger.LogAttrs(ctx, level, fmt.Sprintf("%s %s -> %d", req.Method, req.URL.Path, res.StatusCode),
		slog.String("curl", curlCommand(req.Method, req.URL.String(), req.Header, body)),
		slog.Int("status", res.StatusCode),
		slog.Duration("elapsed", elapsed),
		slog.String("response", prettyBody(res.Body)),
	)
}

func normalizeExpected(codes []int) []int {
	if len(codes) == 0 {
		return []int{http.StatusOK}
	}

	out := slices.Clone(codes)
	slices.Sort(out)

	return slices.Compact(out)
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		return io.ReadAll(b)
	default:
		return json.Marshal(b)
	}
}
