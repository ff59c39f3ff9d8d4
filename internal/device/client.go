// Package device talks to the AquaConnect panel over its local web server.
package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultStatusPath is the page the panel's own web UI polls.
	DefaultStatusPath = "/WNewSt.htm"

	statusRequestBody = "Update Local Server&"
	keyRequestFormat  = "KeyId=%s&"
	formContentType   = "application/x-www-form-urlencoded"
	textContentType   = "text/plain; charset=utf-8"
	maxBodyBytes      = 64 << 10
)

// ErrUnexpectedStatus is returned when the panel answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected panel response status")

// Client issues status polls and simulated key presses. It never retries.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient builds a client for the panel at address ("192.168.10.108" or a
// full "http://host:port" base URL).
func NewClient(address, statusPath string, timeout time.Duration) *Client {
	return NewClientWithHTTP(address, statusPath, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP is NewClient with a caller supplied http.Client.
func NewClientWithHTTP(address, statusPath string, hc *http.Client) *Client {
	if statusPath == "" {
		statusPath = DefaultStatusPath
	}
	if !strings.HasPrefix(statusPath, "/") {
		statusPath = "/" + statusPath
	}
	base := strings.TrimRight(address, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{url: base + statusPath, httpClient: hc}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Status asks the panel to refresh and returns the raw status page.
func (c *Client) Status(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(statusRequestBody))
	if err != nil {
		return "", fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", textContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post status request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read status body: %w", err)
	}
	return string(body), nil
}

// PressKey simulates a press of the panel key with the given two-digit code.
func (c *Client) PressKey(ctx context.Context, key string) error {
	payload := fmt.Sprintf(keyRequestFormat, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build key request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("Connection", "close")
	req.Close = true

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post key %s: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: key %s: %d", ErrUnexpectedStatus, key, resp.StatusCode)
	}
	return nil
}
