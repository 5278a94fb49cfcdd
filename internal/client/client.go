package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

const defaultHTTPTimeout = 10 * time.Second

var errUnexpectedStatus = errors.New("unexpected status")

// errorBody - is the error shape every service answers with.
type errorBody struct {
	Error string `json:"error"`
}

// base - shared plumbing for the service clients.
type base struct {
	baseURL    string
	httpClient *http.Client
}

func newBase(baseURL string, httpClient *http.Client) base {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return base{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// do - sends a JSON request and decodes a 2xx JSON response into out.
// Every failure, including non-2xx answers, comes back as a dependency error.
func (that base) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return apperror.Wrap(apperror.ErrDependency, method+" "+path+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var failure errorBody
		_ = json.NewDecoder(resp.Body).Decode(&failure)

		cause := fmt.Errorf("%w %d: %s", errUnexpectedStatus, resp.StatusCode, failure.Error)
		return apperror.Wrap(apperror.ErrDependency, method+" "+path+" failed", cause)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Wrap(apperror.ErrDependency, "invalid response from "+path, err)
	}

	return nil
}

// Health - checks a service's /health endpoint.
func Health(ctx context.Context, httpClient *http.Client, baseURL string) error {
	return newBase(baseURL, httpClient).do(ctx, http.MethodGet, "/health", nil, nil)
}
