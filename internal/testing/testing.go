// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/desertthunder/lyrx/internal/models"
)

// MockClient is a test double for [services.Client].
//
// Unset funcs return empty results. Calls are counted.
type MockClient struct {
	SuggestFn func(ctx context.Context, term string) (*models.SearchResultPage, error)
	PageFn    func(ctx context.Context, link string) (*models.SearchResultPage, error)
	LyricsFn  func(ctx context.Context, artist, title string) (*models.LyricsResult, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockClient) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns the calls made so far as "op:arg" strings.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockClient) Suggest(ctx context.Context, term string) (*models.SearchResultPage, error) {
	m.record("suggest:" + term)
	if m.SuggestFn != nil {
		return m.SuggestFn(ctx, term)
	}
	return &models.SearchResultPage{}, nil
}

func (m *MockClient) Page(ctx context.Context, link string) (*models.SearchResultPage, error) {
	m.record("page:" + link)
	if m.PageFn != nil {
		return m.PageFn(ctx, link)
	}
	return &models.SearchResultPage{}, nil
}

func (m *MockClient) Lyrics(ctx context.Context, artist, title string) (*models.LyricsResult, error) {
	m.record("lyrics:" + artist + "/" + title)
	if m.LyricsFn != nil {
		return m.LyricsFn(ctx, artist, title)
	}
	return &models.LyricsResult{Lyrics: &models.Lyrics{Artist: artist, Title: title}}, nil
}

func (m *MockClient) Name() string { return "mock" }

// RecordingNotifier collects blocking notifications instead of showing them.
type RecordingNotifier struct {
	mu       sync.Mutex
	Messages []string
}

func (n *RecordingNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, msg)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}
