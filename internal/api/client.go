// Package api is the HTTP gateway to the Mnemonic backend. Every request
// goes through one dispatch path that injects the bearer token and
// normalizes failures into *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RequestTimeout bounds every outbound call. There is no automatic retry;
// superseded in-flight requests are simply ignored by their callers.
const RequestTimeout = 15 * time.Second

// TokenSource supplies the bearer credential. An empty token is not an
// error; the request proceeds unauthenticated and the server decides.
type TokenSource interface {
	Token(ctx context.Context) string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: RequestTimeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// do dispatches one request and decodes the JSON response into out when
// out is non-nil. Any failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.tokens.Token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Status: 0, Message: "Network error. Please check your connection."}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

func normalizeResponse(resp *http.Response) *Error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(raw, &body); err != nil {
		return &Error{Status: resp.StatusCode, Message: "Request failed"}
	}
	return &Error{Status: resp.StatusCode, Message: body.text(), Details: body.Detail}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}
	return c.do(ctx, method, path, nil, bytes.NewReader(buf), "application/json", out)
}

// sendMultipart builds a multipart body for the voice endpoint; fields is
// written before the audio part so small values land first on the wire.
func (c *Client) sendMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return &Error{Status: 0, Message: err.Error()}
		}
	}

	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}
	if err := w.Close(); err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}

	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), out)
}

// logErr records a failed call and hands the error straight back; wrappers
// never swallow normalized errors.
func (c *Client) logErr(op string, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.logger.Warn(op+" failed",
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
	} else {
		c.logger.Warn(op+" failed", zap.Error(err))
	}
	return err
}
