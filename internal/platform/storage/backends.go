package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// LocalBackend writes objects into a directory served under a public base URL.
type LocalBackend struct {
	dir     string
	baseURL string
}

// NewLocalBackend creates the directory on first use.
func NewLocalBackend(dir, publicBaseURL string) *LocalBackend {
	return &LocalBackend{dir: dir, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (b *LocalBackend) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(b.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return b.baseURL + "/" + filepath.Base(name), nil
}

// Dir is the directory the router serves statically.
func (b *LocalBackend) Dir() string { return b.dir }

// RemoteBackend posts objects to an asset host as multipart form data and reads
// the stored URL from a JSON body of the form {"url": "..."}.
type RemoteBackend struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewRemoteBackend wires an instrumented HTTP client. The per-attempt deadline comes
// from the caller context.
func NewRemoteBackend(endpoint, token string) *RemoteBackend {
	return &RemoteBackend{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type remoteResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

func (b *RemoteBackend) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var decoded remoteResponse
	_ = json.Unmarshal(raw, &decoded)
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg := decoded.Message
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return "", fmt.Errorf("asset host returned %d: %s", resp.StatusCode, msg)
	}
	if decoded.URL == "" {
		return "", errors.New("asset host response missing url")
	}
	return decoded.URL, nil
}
