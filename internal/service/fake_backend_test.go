package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/backend"
)

// fakeBackend записывает вызовы REST API и отвечает заранее заданными обработчиками
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	calls  []string
	routes map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) (*fakeBackend, *backend.Client) {
	t.Helper()
	fb := &fakeBackend{t: t, routes: make(map[string]http.HandlerFunc)}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, backend.NewClient(backend.Config{BaseURL: srv.URL + "/api"}, zap.NewNop())
}

func (f *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeBackend) respondJSON(method, path string, body string) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeBackend) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")

	f.mu.Lock()
	f.calls = append(f.calls, key)
	h, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected backend call %s", key)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Errorf("decode request body: %v", err)
	}
}
