// Package verification talks to the identity and background check provider.
package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"movers/internal/core/ports"
	"movers/internal/pkg/errs"
)

const (
	upstreamName = "verification provider"

	identityPath        = "/v1/identity/verifications"
	backgroundCheckPath = "/v1/background-checks"
)

var _ ports.VerificationProvider = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string, client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

type documentRequest struct {
	FullName       string `json:"full_name"`
	DocumentType   string `json:"document_type,omitempty"`
	DocumentNumber string `json:"document_number"`
	Country        string `json:"country,omitempty"`
}

type verificationResponse struct {
	Status string `json:"status"`
}

// VerifyIdentity reports true only for a "verified" outcome.
func (c *HTTPClient) VerifyIdentity(ctx context.Context, doc ports.IdentityDocument) (bool, error) {
	status, err := c.post(ctx, identityPath, doc)
	if err != nil {
		return false, fmt.Errorf("failed to verify identity | %w", err)
	}
	return status == "verified", nil
}

// SubmitBackgroundCheck reports true only when the check came back "clear".
// Checks that are still running report false and complete later through
// RecordBackgroundCheck.
func (c *HTTPClient) SubmitBackgroundCheck(ctx context.Context, doc ports.IdentityDocument) (bool, error) {
	status, err := c.post(ctx, backgroundCheckPath, doc)
	if err != nil {
		return false, fmt.Errorf("failed to submit background check | %w", err)
	}
	return status == "clear", nil
}

func (c *HTTPClient) post(ctx context.Context, path string, doc ports.IdentityDocument) (string, error) {
	payload, err := json.Marshal(documentRequest{
		FullName:       doc.FullName,
		DocumentType:   doc.DocumentType,
		DocumentNumber: doc.DocumentNumber,
		Country:        doc.Country,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if errs.IsTimeout(err) {
			return "", errs.NewUpstreamTimeoutError(upstreamName, err)
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("provider responded with status %d", resp.StatusCode)
	}

	var out verificationResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errs.IsTimeout(err) {
			return "", errs.NewUpstreamTimeoutError(upstreamName, err)
		}
		return "", fmt.Errorf("failed to decode provider response | %w", err)
	}

	return strings.ToLower(out.Status), nil
}
