// Package contentstore uploads assets and metadata documents to a
// content-addressed store and dereferences the resulting URLs.
//
// Two backends are provided: the IPFS HTTP API (IPFSStore, e.g. an Infura
// project) and an S3-compatible pinning service that reports the content
// identifier in object metadata (S3Store). Both return gateway URLs of the
// form <gateway>/ipfs/<cid>.
package contentstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ipfs/go-cid"
)

var (
	// ErrUpload wraps every failure to add content to the store.
	ErrUpload = errors.New("upload failed")
	// ErrMetadata wraps failures to fetch or decode a metadata document.
	ErrMetadata = errors.New("metadata fetch failed")
)

// DefaultGateway is the public gateway used to build retrieval URLs.
const DefaultGateway = "https://ipfs.io"

// Store is the upload side of the content store.
type Store interface {
	// Upload pins arbitrary bytes and returns their retrieval URL.
	Upload(ctx context.Context, r io.Reader) (string, error)
	// UploadJSON serialises doc, pins it and returns its retrieval URL.
	UploadJSON(ctx context.Context, doc any) (string, error)
}

// GatewayURL builds the public retrieval URL for a content identifier.
func GatewayURL(gateway, contentID string) string {
	if gateway == "" {
		gateway = DefaultGateway
	}
	return strings.TrimRight(gateway, "/") + "/ipfs/" + contentID
}

// parseContentID checks that the identifier returned by a backend really is
// a CID before it ends up in a token URI.
func parseContentID(s string) (string, error) {
	c, err := cid.Decode(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: bad content id %q: %w", ErrUpload, s, err)
	}
	return c.String(), nil
}
