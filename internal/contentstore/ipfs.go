package contentstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// DefaultIPFSAPI is the IPFS HTTP API endpoint used when none is configured.
const DefaultIPFSAPI = "https://ipfs.infura.io:5001"

type IPFSConfig struct {
	// APIURL is the base of the HTTP API, without the /api/v0 suffix.
	APIURL string
	// ProjectID and ProjectSecret enable basic auth when both are set.
	ProjectID     string
	ProjectSecret string
	GatewayURL    string
	Timeout       time.Duration
}

// IPFSStore adds content through the IPFS HTTP API.
type IPFSStore struct {
	sh      *shell.Shell
	gateway string
}

func NewIPFSStore(cfg IPFSConfig) *IPFSStore {
	api := cfg.APIURL
	if api == "" {
		api = DefaultIPFSAPI
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.ProjectID != "" && cfg.ProjectSecret != "" {
		transport = &basicAuthTransport{
			header: basicAuth(cfg.ProjectID, cfg.ProjectSecret),
			base:   transport,
		}
	}

	client := &http.Client{Transport: transport, Timeout: cfg.Timeout}

	return &IPFSStore{
		sh:      shell.NewShellWithClient(api, client),
		gateway: cfg.GatewayURL,
	}
}

// Upload adds and pins r. Cancelling ctx aborts the request.
func (s *IPFSStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	body, contentType := multipartFile(r)
	defer body.Close()

	var out struct{ Hash string }
	err := s.sh.Request("add").
		Option("pin", true).
		Header("Content-Type", contentType).
		Body(body).
		Exec(ctx, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	contentID, err := parseContentID(out.Hash)
	if err != nil {
		return "", err
	}

	return GatewayURL(s.gateway, contentID), nil
}

// multipartFile streams r as the single file part the add endpoint expects.
// Closing the returned reader stops the copy.
func multipartFile(r io.Reader) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", "file")
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func (s *IPFSStore) UploadJSON(ctx context.Context, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: encode document: %w", ErrUpload, err)
	}
	return s.Upload(ctx, bytes.NewReader(data))
}

func basicAuth(user, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+secret))
}

type basicAuthTransport struct {
	header string
	base   http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", t.header)
	return t.base.RoundTrip(req)
}
