package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedSecurityHeaders = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueSameOrigin,
	HeaderXSSProtection:  HeaderValueXSSBlock,
	HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, expected := range expectedSecurityHeaders {
		assert.Equal(t, expected, rec.Header().Get(header), header)
	}
}

// Webhook deliveries come from the inventory server, which never holds the
// bridge API key; they authenticate by the id in the path instead.
func TestRouter_WebhookBypassesAPIKey(t *testing.T) {
	h := newTestServer(t, &fakeBridge{})
	body := `{"type":"item.updated","data":{"id":"i1"}}`

	tests := []struct {
		name   string
		key    string
		path   string
		status int
	}{
		{"no key, known id", "", "/api/webhook/hook1", http.StatusOK},
		{"wrong key, known id", "wrong", "/api/webhook/hook1", http.StatusOK},
		{"no key, unknown id", "", "/api/webhook/guess", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(body))
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			for header, expected := range expectedSecurityHeaders {
				assert.Equal(t, expected, rec.Header().Get(header), header)
			}
		})
	}
}

func TestRouter_RejectedRequestsCarrySecurityHeaders(t *testing.T) {
	h := newTestServer(t, &fakeBridge{})

	rec := do(h, http.MethodPost, "/api/v1/services/move_item", `{"item_id":"i1","location_id":"l2"}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	for header, expected := range expectedSecurityHeaders {
		assert.Equal(t, expected, rec.Header().Get(header), header)
	}
}
