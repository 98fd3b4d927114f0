// Package api implements the thin HTTP/JSON client for the FocusFlow
// backend: the sync reconciliation endpoint, the storage-credential
// endpoint and the remote blob store used for backups.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/netx"
)

// Client talks to the FocusFlow backend. It is safe for concurrent use.
type Client struct {
	baseURL      string
	http         *http.Client
	sessionToken string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetSessionToken installs the bearer token for authenticated calls.
func (c *Client) SetSessionToken(token string) {
	c.sessionToken = token
}

// Ping probes backend reachability; used as the online/offline signal.
func (c *Client) Ping(ctx context.Context) error {
	return netx.CheckEndpoint(ctx, c.http, c.baseURL+"/api/health")
}

// Sync posts the full local snapshot to the reconciliation endpoint and
// returns the per-entity outcomes. Transport failures are reported as
// common.ErrTransport so callers can queue the request for retry.
func (c *Client) Sync(ctx context.Context, req *models.SyncRequest) (*models.SyncResponse, error) {
	var resp models.SyncResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/sync", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// storageTokenResponse mirrors the credential endpoint's body.
type storageTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// FetchStorageToken obtains the bearer credential for the remote blob
// store. Failures are reported as common.ErrUnauthorized: the session must
// be re-established, retrying will not help.
func (c *Client) FetchStorageToken(ctx context.Context) (string, time.Time, error) {
	var resp storageTokenResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/storage-token", nil, &resp); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	var expiresAt time.Time
	if resp.ExpiresAt != "" {
		if parsed, err := time.Parse(time.RFC3339, resp.ExpiresAt); err == nil {
			expiresAt = parsed
		}
	}
	return resp.AccessToken, expiresAt, nil
}

// doJSON performs one JSON request/response cycle against the backend.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.sessionToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %w", common.ErrTransport, err)
		}
	}
	return nil
}

// classifyStatus maps HTTP status codes onto the shared error taxonomy.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, resp.Status)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: %s", common.ErrTransport, resp.Status, string(b))
	}
}
