// Raw upstream responses relayed without decoding
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
}

// OK reports whether the upstream answered 200.
func (a *APIResponse) OK() bool {
	return a.StatusCode == http.StatusOK
}

// readAPIResponse drains and closes resp.Body into an [APIResponse].
func readAPIResponse(resp *http.Response) (*APIResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		IsJSON:     json.Valid(body),
	}, nil
}
