package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewESClient_RequiresAddress(t *testing.T) {
	_, err := NewESClient(ESOptions{})
	assert.Error(t, err)
}

func TestPingES(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	es, err := NewESClient(ESOptions{Addresses: []string{srv.URL}, MaxRetries: 1})
	require.NoError(t, err)
	assert.NoError(t, PingES(context.Background(), es))

	status = http.StatusUnauthorized
	assert.ErrorContains(t, PingES(context.Background(), es), "401")
}
