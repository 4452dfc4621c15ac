package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadBytes caps a single upload at 5 MB.
const MaxUploadBytes = 5 << 20

const (
	defaultAttemptTimeout = 30 * time.Second
	defaultRetries        = 2
	defaultRetryDelay     = time.Second
	defaultPlaceholderURL = "/images/placeholder.png"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds the 5MB limit")
	ErrUnsupportedType = errors.New("only image uploads are accepted")
)

var allowedTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/webp":    {},
	"image/avif":    {},
	"image/svg+xml": {},
}

// Backend stores one object and returns its public URL.
type Backend interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Result describes a finished upload. Placeholder is set when every attempt failed
// and URL points at the fallback image instead.
type Result struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	Placeholder bool   `json:"placeholder"`
	Attempts    int    `json:"-"`
}

// Uploader validates images and pushes them to a backend with bounded retries.
type Uploader struct {
	backend        Backend
	placeholderURL string
	attemptTimeout time.Duration
	retries        int
	retryDelay     time.Duration
	logger         *slog.Logger
}

// Option configures the uploader.
type Option func(*Uploader)

func WithPlaceholderURL(url string) Option {
	return func(u *Uploader) {
		if url != "" {
			u.placeholderURL = url
		}
	}
}

func WithAttemptTimeout(timeout time.Duration) Option {
	return func(u *Uploader) {
		if timeout > 0 {
			u.attemptTimeout = timeout
		}
	}
}

func WithRetries(retries int) Option {
	return func(u *Uploader) {
		if retries >= 0 {
			u.retries = retries
		}
	}
}

func WithRetryDelay(delay time.Duration) Option {
	return func(u *Uploader) {
		if delay >= 0 {
			u.retryDelay = delay
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUploader wires an uploader around the backend.
func NewUploader(backend Backend, opts ...Option) *Uploader {
	u := &Uploader{
		backend:        backend,
		placeholderURL: defaultPlaceholderURL,
		attemptTimeout: defaultAttemptTimeout,
		retries:        defaultRetries,
		retryDelay:     defaultRetryDelay,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload reads the file, checks size and content type, and stores it. Validation
// failures are returned as errors; storage failures degrade to the placeholder URL.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	mtype := mimetype.Detect(data)
	if _, ok := allowedTypes[mtype.String()]; !ok {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedType, mtype.String())
	}
	name := uuid.NewString() + mtype.Extension()
	result := &Result{Name: name, ContentType: mtype.String(), Size: len(data)}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(u.retryDelay), uint64(u.retries)),
		ctx,
	)
	operation := func() error {
		result.Attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, u.attemptTimeout)
		defer cancel()
		url, err := u.backend.Put(attemptCtx, name, mtype.String(), bytes.Clone(data))
		if err != nil {
			return err
		}
		result.URL = url
		return nil
	}
	notify := func(err error, wait time.Duration) {
		u.logger.WarnContext(ctx, "upload attempt failed",
			slog.String("file.name", filename),
			slog.Int("attempt", result.Attempts),
			slog.Duration("retry_in", wait),
			slog.String("error", err.Error()))
	}
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		u.logger.ErrorContext(ctx, "upload failed, using placeholder",
			slog.String("file.name", filename),
			slog.Int("attempts", result.Attempts),
			slog.String("error", err.Error()))
		result.URL = u.placeholderURL
		result.Placeholder = true
		return result, nil
	}
	u.logger.InfoContext(ctx, "upload stored",
		slog.String("file.name", filename),
		slog.String("upload.url", result.URL),
		slog.Int("upload.size", result.Size))
	return result, nil
}
