package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// errorResponse is the JSON body Last.fm returns when a call fails.
// Failed calls may come back with a 200 status, so the body is always
// checked for an error code.
type errorResponse struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

// call makes a GET request to the Last.fm API in JSON format and decodes
// the response into out.
//
// It handles:
// - Request construction with api_key, method and format parameters
// - Error payloads, returned as *Error
// - Non-2xx responses without an error payload
// - Context cancellation
//
// Calls are made exactly once; there is no retry.
func (c *Client) call(ctx context.Context, method string, params map[string]string, out interface{}) error {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("method", method)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	c.logDebugf("lastfm: calling %s", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for API errors first; Last.fm reports them with and
	// without an error status code.
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		lastfmErr := &Error{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		}
		c.logDebugf("lastfm: %s failed: %v", method, lastfmErr)
		return lastfmErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	c.logDebugf("lastfm: %s succeeded", method)
	return nil
}
