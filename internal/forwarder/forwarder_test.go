package forwarder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpr-relay/internal/domain/lpr"
)

func TestForwardSuccess(t *testing.T) {
	var received lpr.CollectorEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, zerolog.Nop())
	ev := lpr.CollectorEvent{
		VehiclePlateNumber:  "ABC123",
		EngineLprExternalID: "id-1",
	}

	require.NoError(t, f.Forward(context.Background(), ev))
	assert.Equal(t, "ABC123", received.VehiclePlateNumber)
	assert.Equal(t, "id-1", received.EngineLprExternalID)
}

func TestForwardNon200CarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("collector overloaded"))
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, zerolog.Nop())

	err := f.Forward(context.Background(), lpr.CollectorEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "collector overloaded")
}

func TestForwardTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := New(srv.URL, time.Second, zerolog.Nop())

	err := f.Forward(context.Background(), lpr.CollectorEvent{})
	assert.Error(t, err)
}

func TestForwardHonorsTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	f := New(srv.URL, 50*time.Millisecond, zerolog.Nop())

	start := time.Now()
	err := f.Forward(context.Background(), lpr.CollectorEvent{})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
