package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/pkg/logger"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, nil, logger.Nop())
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))

	// другой IP имеет собственный бакет
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil, logger.Nop())
	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")

	rl.evict(time.Now().Add(time.Minute))

	assert.Empty(t, rl.visitors)
}

func TestRateLimiter_IgnoresForwardedHeadersFromClients(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, nil, logger.Nop())
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("203.0.113.1"))
	// смена заголовка не дает нового бакета
	assert.Equal(t, http.StatusTooManyRequests, call("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, call("203.0.113.3"))
}

func TestClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "127.0.0.1"})
	require.NoError(t, err)
	rl := NewRateLimiter(1, 1, trusted, logger.Nop())

	tests := []struct {
		name      string
		remote    string
		forwarded string
		realIP    string
		want      string
	}{
		{name: "direct client", remote: "192.168.1.10:5555", want: "192.168.1.10"},
		{name: "untrusted peer sends headers", remote: "192.168.1.10:5555", forwarded: "203.0.113.5", realIP: "203.0.113.6", want: "192.168.1.10"},
		{name: "trusted proxy", remote: "10.1.2.3:80", forwarded: "203.0.113.5", want: "203.0.113.5"},
		{name: "spoofed left hops skipped", remote: "10.1.2.3:80", forwarded: "1.1.1.1, 203.0.113.5, 10.0.0.2", want: "203.0.113.5"},
		{name: "real ip behind proxy", remote: "127.0.0.1:80", realIP: "203.0.113.9", want: "203.0.113.9"},
		{name: "garbage header", remote: "127.0.0.1:80", forwarded: "not-an-ip", want: "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, rl.clientIP(req))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	nets, err := ParseTrustedProxies([]string{"10.0.0.1", " 172.16.0.0/12 ", "", "::1"})
	require.NoError(t, err)
	assert.Len(t, nets, 3)

	_, err = ParseTrustedProxies([]string{"10.0.0.300"})
	assert.Error(t, err)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/40"})
	assert.Error(t, err)
}
