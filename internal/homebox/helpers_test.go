package homebox

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testToken = "Bearer test-token-0123456789"

// fakeServer is an in-process inventory server that counts calls per route.
type fakeServer struct {
	srv *httptest.Server

	mu      sync.Mutex
	calls   map[string]int
	bodies  map[string][]map[string]any
	headers map[string][]string
	routes  map[string]http.HandlerFunc
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{
		calls:   make(map[string]int),
		bodies:  make(map[string][]map[string]any),
		headers: make(map[string][]string),
		routes:  make(map[string]http.HandlerFunc),
	}
	fs.handle(http.MethodPost, "/api/v1/users/login", loginOK(testToken, time.Now().Add(time.Hour)))

	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		var body map[string]any
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}

		fs.mu.Lock()
		fs.calls[key]++
		fs.bodies[key] = append(fs.bodies[key], body)
		fs.headers[key] = append(fs.headers[key], r.Header.Get(HeaderAuthorization))
		h, ok := fs.routes[key]
		fs.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeServer) handle(method, path string, h http.HandlerFunc) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.routes[method+" "+path] = h
}

func (fs *fakeServer) count(method, path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.calls[method+" "+path]
}

func (fs *fakeServer) logins() int {
	return fs.count(http.MethodPost, "/api/v1/users/login")
}

func (fs *fakeServer) requestBodies(method, path string) []map[string]any {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]map[string]any(nil), fs.bodies[method+" "+path]...)
}

func (fs *fakeServer) authHeaders(method, path string) []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.headers[method+" "+path]...)
}

func (fs *fakeServer) client() *Client {
	return NewClient(Config{
		BaseURL:  fs.srv.URL,
		Username: "user@example.com",
		Password: "secret",
		Timeout:  5 * time.Second,
	})
}

func loginOK(token string, expires time.Time) http.HandlerFunc {
	return jsonResponse(http.StatusOK, map[string]any{
		"token":   token,
		"expires": expires.UTC().Format(time.RFC3339),
	})
}

func jsonResponse(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderContentType, ContentTypeJSON)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func rawResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// sequence serves the handlers in order, repeating the last one.
func sequence(handlers ...http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	n := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		h := handlers[min(n, len(handlers)-1)]
		n++
		mu.Unlock()
		h(w, r)
	}
}
