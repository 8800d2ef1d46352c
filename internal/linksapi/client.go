package linksapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/IgorGrieder/encurtador-console/internal/links"
	"github.com/IgorGrieder/encurtador-console/pkg/httpclient"
	"github.com/IgorGrieder/encurtador-console/pkg/httputils"
)

const (
	APIKeyHeader = "X-API-Key"

	linksPath = "/api/links"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a list response other than 200.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("list links: status %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client talks to the short-link API. It satisfies console.LinksAPI.
type Client struct {
	http    *httpclient.Client
	baseURL string
	apiKey  string
}

func NewClient(hc *httpclient.Client, baseURL, apiKey string) *Client {
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
	}
}

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Accept":                      "application/json",
		httputils.CorrelationIDHeader: httputils.NewCorrelationID(),
	}
	if c.apiKey != "" {
		h[APIKeyHeader] = c.apiKey
	}
	return h
}

// List fetches every link in API order.
func (c *Client) List(ctx context.Context) ([]links.Link, error) {
	resp, err := c.http.Get(ctx, c.baseURL+linksPath, nil, c.headers())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var out []links.Link
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}
	if out == nil {
		out = []links.Link{}
	}
	return out, nil
}

// Create posts a new link. The created record in the response is not used.
func (c *Client) Create(ctx context.Context, req links.CreateLinkRequest) (links.MutationResult, error) {
	resp, err := c.http.Post(ctx, c.baseURL+linksPath, req, c.headers())
	if err != nil {
		return links.MutationResult{}, err
	}
	defer resp.Body.Close()

	return links.MutationResult{
		Status: resp.StatusCode,
		Error:  readErrorMessage(resp.Body),
	}, nil
}

func (c *Client) Delete(ctx context.Context, code string) (links.MutationResult, error) {
	resp, err := c.http.Delete(ctx, c.baseURL+linksPath+"/"+url.PathEscape(code), c.headers())
	if err != nil {
		return links.MutationResult{}, err
	}
	defer resp.Body.Close()

	return links.MutationResult{
		Status: resp.StatusCode,
		Error:  readErrorMessage(resp.Body),
	}, nil
}

// readErrorMessage pulls "error" out of a JSON object body. Anything else,
// including an unreadable or non-JSON body, yields "".
func readErrorMessage(body io.Reader) string {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&payload); err != nil {
		return ""
	}
	msg, ok := payload.Error.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(msg)
}
