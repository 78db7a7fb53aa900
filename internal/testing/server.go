package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// LyricsServer is an [httptest.Server] imitating lyrics.ovh.
//
// Suggestion and page bodies are raw JSON so tests can embed links to the server itself.
type LyricsServer struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []string
	suggestions map[string]string
	pages       map[string]string
	lyrics      map[string]string
}

// NewLyricsServer starts a fake lyrics service that is closed with the test.
func NewLyricsServer(t *testing.T) *LyricsServer {
	t.Helper()

	s := &LyricsServer{
		suggestions: map[string]string{},
		pages:       map[string]string{},
		lyrics:      map[string]string{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetSuggestion registers the raw JSON body returned for term.
func (s *LyricsServer) SetSuggestion(term, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions[term] = body
}

// SetPage registers the raw JSON body returned for /page/{name} and /{name}, and returns the absolute link.
func (s *LyricsServer) SetPage(name, body string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[name] = body
	return s.URL + "/page/" + name
}

// SetLyrics registers lyrics text for artist and title.
func (s *LyricsServer) SetLyrics(artist, title, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lyrics[artist+"\x00"+title] = text
}

// Requests returns the escaped request URIs received so far.
func (s *LyricsServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *LyricsServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.RequestURI)
	s.mu.Unlock()

	segments := strings.Split(strings.TrimPrefix(r.URL.EscapedPath(), "/"), "/")
	for i, seg := range segments {
		if v, err := url.PathUnescape(seg); err == nil {
			segments[i] = v
		}
	}

	w.Header().Set("Content-Type", "application/json")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case len(segments) == 2 && segments[0] == "suggest":
		body, ok := s.suggestions[segments[1]]
		if !ok {
			body = `{"data":[],"total":0}`
		}
		fmt.Fprint(w, body)
	case len(segments) == 2 && segments[0] == "page", len(segments) == 1 && segments[0] != "":
		body, ok := s.pages[segments[len(segments)-1]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"page expired"}`)
			return
		}
		fmt.Fprint(w, body)
	case len(segments) == 3 && segments[0] == "v1":
		text, ok := s.lyrics[segments[1]+"\x00"+segments[2]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"No lyrics found"}`)
			return
		}
		body, _ := json.Marshal(text)
		fmt.Fprintf(w, `{"lyrics":%s}`, body)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not found"}`)
	}
}
