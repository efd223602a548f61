// Package classifier implements the HTTP client for the remote species
// classification service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/wlds/wlds-go/internal/errors"
	"github.com/wlds/wlds-go/internal/httpclient"
	"github.com/wlds/wlds-go/internal/logging"
	"github.com/wlds/wlds-go/internal/media"
	"github.com/wlds/wlds-go/internal/session"
)

// Package-level logger specific to the classifier service
var (
	serviceLogger *slog.Logger
	closeLogger   func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "classifier.log")

	serviceLogger, closeLogger, err = logging.NewFileLogger(logFilePath, "classifier", slog.LevelDebug)
	if err != nil {
		// Fallback: log error to standard log and disable service logging
		log.Printf("Failed to initialize classifier file logger at %s: %v. Service logging disabled.", logFilePath, err)
		serviceLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		closeLogger = func() error { return nil }
	}
}

// Payload is the media attached to one scan request. Either part may be
// nil; an absent modality is omitted from the request body.
type Payload struct {
	Audio *media.Blob
	Image *media.Blob
}

// Interface defines what methods a classifier client must have.
type Interface interface {
	Analyze(ctx context.Context, mode session.Mode, payload Payload) (Result, error)
	Close()
}

// Client posts captured media to the remote classification endpoint.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// New creates a classifier client for the given base URL.
func New(baseURL string) *Client {
	serviceLogger.Info("Creating new classifier client", "base_url", baseURL)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(nil),
	}
}

// Analyze submits the payload to POST {base}/analyze/{mode} as multipart
// form data with optional audio and image parts, and decodes the JSON
// response. Any transport failure, non-2xx status or malformed body is
// returned as a network-category error; the caller decides whether to
// substitute demo data.
func (c *Client) Analyze(ctx context.Context, mode session.Mode, payload Payload) (Result, error) {
	endpoint := fmt.Sprintf("%s/analyze/%s", c.baseURL, mode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := attachPart(writer, "audio", payload.Audio); err != nil {
		return Result{}, err
	}
	if err := attachPart(writer, "image", payload.Image); err != nil {
		return Result{}, err
	}
	if err := writer.Close(); err != nil {
		return Result{}, errors.New(err).
			Component("classifier").
			Category(errors.CategoryGeneric).
			Context("operation", "finalize_multipart").
			Build()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Result{}, errors.New(err).
			Component("classifier").
			Category(errors.CategoryHTTP).
			Context("url", endpoint).
			Build()
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	serviceLogger.Info("Submitting scan", "url", endpoint, "mode", string(mode),
		"audio_bytes", payload.Audio.Size(), "image_bytes", payload.Image.Size())

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return Result{}, handleNetworkError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			serviceLogger.Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serviceLogger.Warn("Classifier returned non-2xx status", "url", endpoint, "status_code", resp.StatusCode)
		return Result{}, errors.Newf("classifier returned status %d", resp.StatusCode).
			Component("classifier").
			Category(errors.CategoryHTTP).
			Context("url", endpoint).
			Context("status_code", resp.StatusCode).
			Build()
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, errors.New(err).
			Component("classifier").
			Category(errors.CategoryNetwork).
			Context("url", endpoint).
			Build()
	}

	var result Result
	if err := json.Unmarshal(responseBody, &result); err != nil {
		serviceLogger.Error("Failed to decode classifier response", "url", endpoint, "body", string(responseBody), "error", err)
		return Result{}, errors.New(err).
			Component("classifier").
			Category(errors.CategoryNetwork).
			Context("url", endpoint).
			Context("operation", "decode_response").
			Build()
	}

	serviceLogger.Info("Classification received", "species", result.Species,
		"type", result.Type, "confidence", result.Confidence)
	return result, nil
}

// attachPart writes one media blob as a multipart file part. Nil blobs are
// skipped so absent modalities never appear in the request.
func attachPart(writer *multipart.Writer, field string, blob *media.Blob) error {
	if blob == nil {
		return nil
	}
	filename := blob.Filename
	if filename == "" {
		filename = field
	}
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return errors.New(err).
			Component("classifier").
			Category(errors.CategoryGeneric).
			Context("field", field).
			Build()
	}
	if _, err := part.Write(blob.Data); err != nil {
		return errors.New(err).
			Component("classifier").
			Category(errors.CategoryGeneric).
			Context("field", field).
			Build()
	}
	return nil
}

// handleNetworkError triages a transport error into a more specific message.
func handleNetworkError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		serviceLogger.Warn("Network request timed out", "error", err)
		return errors.Newf("request timed out: %w", err).
			Component("classifier").
			Category(errors.CategoryNetwork).
			Build()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		var dnsErr *net.DNSError
		if errors.As(urlErr.Err, &dnsErr) {
			serviceLogger.Error("DNS resolution failed", "url", urlErr.URL, "error", err)
			return errors.Newf("DNS resolution failed: %w", err).
				Component("classifier").
				Category(errors.CategoryNetwork).
				Build()
		}
	}
	serviceLogger.Error("Network error occurred", "error", err)
	return errors.Newf("network error: %w", err).
		Component("classifier").
		Category(errors.CategoryNetwork).
		Build()
}

// Close releases the client's idle connections and the service log file.
func (c *Client) Close() {
	serviceLogger.Info("Closing classifier client")
	if c.http != nil {
		c.http.Close()
	}
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Failed to close classifier log file: %v", err)
		}
		closeLogger = nil
	}
}
