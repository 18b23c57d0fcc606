package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, 0, logger.Nop())
}

func TestGetSelectedCar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/42/cars/selected", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "user_id": 42, "brand": "Toyota", "model": "Camry", "license_plate": "А123ВС77", "is_selected": true}`))
	})

	car, err := client.GetSelectedCar(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Camry", car.DisplayModel())
	assert.Equal(t, "А123ВС77", car.LicensePlate)
}

func TestGetSelectedCar_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetSelectedCarWithGracefulDegradation(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestGetSelectedCar_Degraded(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "bad user id", http.StatusBadRequest)
			},
		},
		{
			name: "empty car",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		},
		{
			name: "broken json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.GetSelectedCarWithGracefulDegradation(context.Background(), 42)
			assert.ErrorIs(t, err, ErrServiceDegraded)
		})
	}
}

func TestGetSelectedCar_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, 0, logger.Nop())

	_, err := client.GetSelectedCarWithGracefulDegradation(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestGetSelectedCar_Cached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"id": 1, "user_id": 7, "brand": "Lada", "model": "Vesta", "license_plate": "В777ОР99"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, time.Minute, logger.Nop())

	for i := 0; i < 3; i++ {
		car, err := client.GetSelectedCar(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Lada Vesta", car.DisplayModel())
	}
	assert.Equal(t, int32(1), calls.Load())

	_, err := client.GetSelectedCar(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
