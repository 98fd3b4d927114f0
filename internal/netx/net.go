// Package netx contains small network helpers shared by client components.
package netx

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultProbeTimeout bounds a single connectivity probe.
const DefaultProbeTimeout = 3 * time.Second

// CheckEndpoint performs a lightweight GET against url and reports whether
// the endpoint is reachable. Any HTTP status counts as reachable; only
// transport-level failures mean offline.
func CheckEndpoint(ctx context.Context, client *http.Client, url string) error {
	if client == nil {
		client = &http.Client{Timeout: DefaultProbeTimeout}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	return nil
}
