// lyrics.ovh [Client] implementation
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
)

var _ Client = (*LyricsService)(nil)

// SuggestArtist is the artist object nested in a suggestion.
type SuggestArtist struct {
	Name string `json:"name"`
}

// SuggestTrack is one entry of the suggestion payload.
type SuggestTrack struct {
	Title  string        `json:"title"`
	Artist SuggestArtist `json:"artist"`
}

// SuggestResponse is the payload of the suggestion endpoint and of the pagination links it returns.
type SuggestResponse struct {
	Data  []SuggestTrack `json:"data"`
	Total int            `json:"total,omitempty"`
	Prev  string         `json:"prev,omitempty"`
	Next  string         `json:"next,omitempty"`
}

// LyricsResponse is the payload of the lyrics endpoint.
type LyricsResponse struct {
	Lyrics string `json:"lyrics,omitempty"`
	Error  string `json:"error,omitempty"`
}

// LyricsService implements [Client] for lyrics.ovh.
type LyricsService struct {
	api *APIService
}

// NewLyricsService creates a lyrics.ovh client over api.
func NewLyricsService(api *APIService) *LyricsService {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &LyricsService{api: api}
}

func (s *LyricsService) Name() string { return "lyrics.ovh" }

// SuggestPath builds the escaped suggestion path for term.
func SuggestPath(term string) string {
	return "/suggest/" + url.PathEscape(term)
}

// LyricsPath builds the escaped lyrics path for artist and title.
func LyricsPath(artist, title string) string {
	return "/v1/" + url.PathEscape(artist) + "/" + url.PathEscape(title)
}

// Suggest looks up songs matching term.
func (s *LyricsService) Suggest(ctx context.Context, term string) (*models.SearchResultPage, error) {
	resp, err := s.api.Get(ctx, SuggestPath(term))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTransport, err)
	}
	return decodePage(resp)
}

// Page fetches a pagination link as received. A relative link is resolved against the base URL.
func (s *LyricsService) Page(ctx context.Context, link string) (*models.SearchResultPage, error) {
	target, err := ResolveLink(s.api.BaseURL(), link)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.Fetch(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTransport, err)
	}
	return decodePage(resp)
}

// Lyrics looks up the lyrics for artist and title.
func (s *LyricsService) Lyrics(ctx context.Context, artist, title string) (*models.LyricsResult, error) {
	resp, err := s.api.Get(ctx, LyricsPath(artist, title))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTransport, err)
	}

	var payload LyricsResponse
	decodeErr := resp.Decode(&payload)

	// lyrics.ovh answers "not found" with a 404 and an error body.
	if decodeErr == nil && payload.Error != "" {
		return &models.LyricsResult{Error: payload.Error}, nil
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTransport, decodeErr)
	}

	return &models.LyricsResult{
		Lyrics: &models.Lyrics{Artist: artist, Title: title, Text: payload.Lyrics},
	}, nil
}

// ResolveLink turns a pagination link into the URL to fetch.
//
// Absolute http(s) links are returned unchanged and relative links are resolved against base.
// Empty or unparseable links and other schemes fail with [shared.ErrInvalidLink].
func ResolveLink(base, link string) (string, error) {
	invalid := fmt.Errorf("%w: %q", shared.ErrInvalidLink, link)

	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil || strings.TrimSpace(link) == "" {
		return "", invalid
	}
	if ref.IsAbs() {
		if (ref.Scheme != "http" && ref.Scheme != "https") || ref.Host == "" {
			return "", invalid
		}
		return link, nil
	}

	root, err := url.Parse(base)
	if err != nil || !root.IsAbs() {
		return "", invalid
	}
	return root.ResolveReference(ref).String(), nil
}

func decodePage(resp *APIResponse) (*models.SearchResultPage, error) {
	if !resp.OK() {
		return nil, statusError(resp)
	}

	var payload SuggestResponse
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTransport, err)
	}

	return payload.Page(), nil
}

// Page converts the wire payload into a [models.SearchResultPage].
func (r SuggestResponse) Page() *models.SearchResultPage {
	items := make([]models.SongSummary, 0, len(r.Data))
	for _, t := range r.Data {
		items = append(items, models.SongSummary{Artist: t.Artist.Name, Title: t.Title})
	}

	return &models.SearchResultPage{
		Items: items,
		Total: r.Total,
		Prev:  r.Prev,
		Next:  r.Next,
	}
}

func statusError(resp *APIResponse) error {
	return fmt.Errorf("%w: status %d %s", shared.ErrTransport, resp.StatusCode, http.StatusText(resp.StatusCode))
}
