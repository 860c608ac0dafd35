package selfserve

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
	testToken       = "test-token"
)

// newTestServer starts an httptest server and returns Settings pointing at it.
func newTestServer(t *testing.T, handler http.HandlerFunc, auth AuthProvider) (*httptest.Server, *Settings) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewSettingsWith(Config{BaseURL: server.URL, Auth: auth})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("Failed to write response: %v", err)
	}
}

func writeText(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("Failed to write response: %v", err)
	}
}
