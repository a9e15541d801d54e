package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"market-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/SPY", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "tester", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"SPY"}`))
	}))
	defer srv.Close()

	client := New(logger.NewNop(), srv.URL, time.Second, "")

	var out struct {
		Symbol string `json:"symbol"`
	}
	resp, err := client.Get(context.Background(), "/v8/finance/chart/SPY",
		map[string]string{"interval": "1d"},
		map[string]string{"User-Agent": "tester"},
		&out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SPY", out.Symbol)
}

func TestRestyClient_PostWithToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := New(logger.NewNop(), srv.URL, time.Second, "secret")
	resp, err := client.Post(context.Background(), "/x", map[string]string{"a": "b"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
