package contentstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/nftmarket/internal/models"
)

// Fetcher dereferences token URIs.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

func NewFetcherWithClient(c *http.Client) *Fetcher {
	return &Fetcher{client: c}
}

// FetchMetadata downloads and decodes the metadata document at uri.
func (f *Fetcher) FetchMetadata(ctx context.Context, uri string) (models.Metadata, error) {
	var md models.Metadata

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return md, fmt.Errorf("%w: %w", ErrMetadata, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return md, fmt.Errorf("%w: %w", ErrMetadata, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return md, fmt.Errorf("%w: %s: %s; body: %s", ErrMetadata, uri, resp.Status, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return md, fmt.Errorf("%w: decode %s: %w", ErrMetadata, uri, err)
	}

	return md, nil
}
