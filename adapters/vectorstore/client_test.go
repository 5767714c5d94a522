package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viable-systems/vsm-pattern-engine/domain/core"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

func TestStorePatternPostsDecoratedRequest(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/store/pattern", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", time.Second)
	err := client.StorePattern(context.Background(), ports.VectorStoreDocument{ID: "pat_abc"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestHealthCheckParsesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	status, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
}

func TestNonTwoXXStatusIsExternalServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "", time.Second)
	err := client.StoreAnomaly(context.Background(), ports.VectorStoreDocument{ID: "anom_abc"})
	require.Error(t, err)
}

func TestTimeoutMapsToSentinelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Millisecond)
	err := client.StoreCorrelation(context.Background(), ports.VectorStoreDocument{ID: "corr_abc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrVectorStoreTimeout)
}
