package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_MetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, clock.NewMock())
	m.AttemptsObserved(42)

	srv := NewServer("127.0.0.1:0", reg)
	require.NoError(t, srv.Start(context.Background()))
	defer func() {
		assert.NoError(t, srv.Stop(context.Background()))
	}()

	base := "http://" + srv.Addr()

	code, body := get(t, base+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "vanity_attempts_total 42")

	code, _ = get(t, base+"/missing")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_StopWithoutStart(t *testing.T) {
	srv := NewServer("127.0.0.1:0", prometheus.NewRegistry())
	assert.NoError(t, srv.Stop(context.Background()))
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := NewServer(ln.Addr().String(), prometheus.NewRegistry())
	assert.Error(t, srv.Start(context.Background()))
}
