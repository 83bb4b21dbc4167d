package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	handler := AuthMiddleware("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		header string
		want   int
	}{
		{"Bearer secret", http.StatusOK},
		{"", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, tc.want, rec.Code, tc.header)
	}
}

func TestHTTPServer_TokenProtectsRoutes(t *testing.T) {
	server := httptest.NewServer(NewServer(Options{RPC: &testHandler{}, Token: "secret"}))
	t.Cleanup(server.Close)

	resp, _ := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"get_stats","id":1}`, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, out := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"get_stats","id":1}`, map[string]string{"Authorization": "Bearer secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, out.Error)
}

func TestSessionMiddleware(t *testing.T) {
	var got string
	var ok bool
	handler := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, " abc ")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, ok)
	require.Equal(t, "abc", got)

	withRequestID := middleware.RequestID(handler)
	withRequestID.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, ok)
	require.NotEmpty(t, got)

	got, ok = "", false
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, ok)
	require.Empty(t, got)
}
