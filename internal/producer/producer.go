// Package producer is the boundary to the generative content service. The
// producer is an opaque collaborator: it returns content aggregates for a
// topic, and nothing it returns is trusted to satisfy invariants. Every
// generated aggregate goes through the same publication gate as manually
// authored content.
package producer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aulalink/activity-service/internal/models"
)

// Request describes what to generate.
type Request struct {
	Kind models.ContentKind `json:"kind" validate:"required,content_kind"`
	// Topic or extracted document text used as prompt context.
	Topic         string `json:"topic" validate:"required"`
	QuestionCount int    `json:"question_count,omitempty"`
}

// ContentProducer supplies generated content aggregates.
type ContentProducer interface {
	Produce(ctx context.Context, req Request) (*models.ContentAggregate, error)
}

// HTTPProducer calls the generative content service over HTTP. The response
// body is decoded straight into a ContentAggregate; validation happens on the
// caller's side.
type HTTPProducer struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProducer(baseURL string) *HTTPProducer {
	return &HTTPProducer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *HTTPProducer) Produce(ctx context.Context, req Request) (*models.ContentAggregate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal producer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("content producer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content producer returned status %d", resp.StatusCode)
	}

	var agg models.ContentAggregate
	if err := json.NewDecoder(resp.Body).Decode(&agg); err != nil {
		return nil, fmt.Errorf("failed to decode generated content: %w", err)
	}
	agg.HasContent = true
	return &agg, nil
}

// MockProducer returns canned aggregates for tests and development.
type MockProducer struct {
	Aggregate *models.ContentAggregate
	Err       error
	Requests  []Request
}

func (m *MockProducer) Produce(ctx context.Context, req Request) (*models.ContentAggregate, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Aggregate, nil
}
