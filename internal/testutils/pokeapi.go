package testutils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakePokeAPI serves canned /pokemon/{identifier} responses and records the
// paths it was asked for
type FakePokeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]string
	requested []string
}

// NewFakePokeAPI starts a server answering pikachu, bulbasaur and sprigatito.
// Anything else gets a plain-text 404, like the live API.
func NewFakePokeAPI(t *testing.T) *FakePokeAPI {
	t.Helper()

	f := &FakePokeAPI{
		responses: map[string]string{
			"pikachu":    PikachuJSON,
			"25":         PikachuJSON,
			"bulbasaur":  BulbasaurJSON,
			"sprigatito": SprigatitoJSON,
		},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)

	return f
}

// URL is the base URL to hand to the client config
func (f *FakePokeAPI) URL() string {
	return f.Server.URL
}

// Requested returns the request paths seen so far
func (f *FakePokeAPI) Requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requested...)
}

func (f *FakePokeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requested = append(f.requested, r.URL.EscapedPath())
	f.mu.Unlock()

	identifier, ok := strings.CutPrefix(r.URL.Path, "/pokemon/")
	if !ok || r.Method != http.MethodGet {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if identifier == "boom" {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	body, found := f.responses[identifier]
	if !found {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
