package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/common"
)

// TokenSource supplies the bearer credential for the remote blob store.
// Implementations are expected to cache and refresh lazily; Invalidate
// drops the cached credential after the server rejected it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// BlobClient is the HTTP implementation of the remote blob store: a single
// named backup artifact per account plus list/download/delete.
type BlobClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewBlobClient(baseURL string, httpClient *http.Client, tokens TokenSource) *BlobClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &BlobClient{baseURL: baseURL, http: httpClient, tokens: tokens}
}

type upsertRequest struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

type listResponse struct {
	Backups []models.BackupDescriptor `json:"backups"`
}

type downloadResponse struct {
	Data string `json:"data"`
}

// Upsert creates or overwrites the account's single backup artifact.
func (b *BlobClient) Upsert(ctx context.Context, name string, data []byte) (*models.BackupDescriptor, error) {
	var desc models.BackupDescriptor
	err := b.do(ctx, http.MethodPost, "/api/backup", upsertRequest{Name: name, Data: string(data)}, &desc)
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

// List fetches the remote listing. An empty list is a normal result.
func (b *BlobClient) List(ctx context.Context) ([]models.BackupDescriptor, error) {
	var resp listResponse
	if err := b.do(ctx, http.MethodGet, "/api/backup/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Backups == nil {
		resp.Backups = []models.BackupDescriptor{}
	}
	return resp.Backups, nil
}

// Download returns the artifact's raw content.
func (b *BlobClient) Download(ctx context.Context, id string) ([]byte, error) {
	var resp downloadResponse
	if err := b.do(ctx, http.MethodGet, "/api/backup/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return []byte(resp.Data), nil
}

// Delete removes the artifact. Deleting an id that no longer exists is not
// an error.
func (b *BlobClient) Delete(ctx context.Context, id string) error {
	err := b.do(ctx, http.MethodDelete, "/api/backup/"+id, nil, nil)
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

// do performs one authenticated cycle. A 401/403 may just mean the cached
// credential went stale, so it is invalidated and the request retried once
// with a freshly fetched token before the failure is surfaced.
func (b *BlobClient) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = data
	}

	err := b.doOnce(ctx, method, path, payload, out)
	if errors.Is(err, common.ErrUnauthorized) {
		b.tokens.Invalidate()
		err = b.doOnce(ctx, method, path, payload, out)
	}
	return err
}

func (b *BlobClient) doOnce(ctx context.Context, method, path string, payload []byte, out any) error {
	token, err := b.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, resp.Status)
	}
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

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
