// Package submit posts validated row sets to the purchases persistence API
// and relays its summary. Inserted/duplicate counts are authoritative on the
// server side; this client never computes them.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/maquinex/import-service/internal/metrics"
	"github.com/maquinex/import-service/internal/types"
)

// bulkUploadPath is the single outbound contract of the import pipeline.
const bulkUploadPath = "/api/purchases/bulk-upload"

// Submitter is the thin client for the bulk-upload endpoint. The whole row
// set goes out in one POST; there is deliberately no retry loop, since the
// server deduplicates and a blind replay would just inflate its duplicate
// counts.
type Submitter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Submitter) {
		s.httpClient = c
	}
}

// NewSubmitter creates a submitter for the given persistence API base URL.
// apiKey may be empty when the upstream does not require one.
func NewSubmitter(baseURL, apiKey string, opts ...Option) *Submitter {
	s := &Submitter{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type bulkUploadRequest struct {
	Records []types.ParsedRow `json:"records"`
}

// Submit posts the full validated row set and returns the server's summary.
// A transport or non-2xx failure is an error; a 2xx response that reports
// duplicates or per-record errors is NOT an error — callers decide how to
// surface the observations.
func (s *Submitter) Submit(ctx context.Context, records []types.ParsedRow) (*types.UploadResult, error) {
	body, err := json.Marshal(bulkUploadRequest{Records: records})
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	url := s.baseURL + bulkUploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.Submission("error", 0)
		return nil, fmt.Errorf("bulk upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		metrics.Submission("error", 0)
		return nil, fmt.Errorf("bulk upload returned HTTP %d: %s", resp.StatusCode, snippet)
	}

	var result types.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.Submission("error", 0)
		return nil, fmt.Errorf("failed to decode upload result: %w", err)
	}

	outcome := "ok"
	if result.HasObservations() {
		outcome = "observations"
	}
	metrics.Submission(outcome, len(records))

	log.Info().
		Int("records", len(records)).
		Int("inserted", result.Inserted).
		Int("duplicates", result.Duplicates).
		Int("serverErrors", len(result.Errors)).
		Msg("Bulk upload completed")

	return &result, nil
}
