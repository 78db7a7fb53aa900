package browser

import (
	"fmt"
	"strings"

	"github.com/desertthunder/lyrx/internal/models"
)

// ViewKind identifies which of the four mutually exclusive views occupies the result area.
type ViewKind int

const (
	ViewEmpty ViewKind = iota
	ViewResultList
	ViewLyrics
	ViewError
)

func (k ViewKind) String() string {
	switch k {
	case ViewEmpty:
		return "empty"
	case ViewResultList:
		return "result-list"
	case ViewLyrics:
		return "lyrics"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// View is the complete content of the result area.
//
// Only the fields belonging to Kind are set.
type View struct {
	Kind       ViewKind                 `json:"kind"`
	Generation uint64                   `json:"generation"`
	Page       *models.SearchResultPage `json:"page,omitempty"`
	Lyrics     *models.Lyrics           `json:"lyrics,omitempty"`
	Message    string                   `json:"message,omitempty"`

	showResultCount bool
}

// RenderPage builds a result-list view for page. Rendering is pure, so the same page always yields the same view.
func RenderPage(page *models.SearchResultPage, showResultCount bool) View {
	if page == nil {
		page = &models.SearchResultPage{}
	}
	return View{Kind: ViewResultList, Page: page, showResultCount: showResultCount}
}

// RenderLyrics builds a lyrics view, or an error view when the service reported one.
func RenderLyrics(result *models.LyricsResult) View {
	if result.Error != "" || result.Lyrics == nil {
		msg := result.Error
		if msg == "" {
			msg = "No lyrics found"
		}
		return RenderError(msg)
	}
	return View{Kind: ViewLyrics, Lyrics: result.Lyrics}
}

// RenderError builds an error view carrying exactly msg.
func RenderError(msg string) View {
	return View{Kind: ViewError, Message: msg}
}

// Items returns the songs of a result-list view.
func (v View) Items() []models.SongSummary {
	if v.Kind != ViewResultList || v.Page == nil {
		return nil
	}
	return v.Page.Items
}

// HasPrev reports whether a Prev control belongs in this view.
func (v View) HasPrev() bool {
	return v.Kind == ViewResultList && v.Page != nil && v.Page.HasPrev()
}

// HasNext reports whether a Next control belongs in this view.
func (v View) HasNext() bool {
	return v.Kind == ViewResultList && v.Page != nil && v.Page.HasNext()
}

// ResultHeading returns "Found N results" when the result count is enabled, otherwise "".
func (v View) ResultHeading() string {
	if v.Kind != ViewResultList || !v.showResultCount || v.Page == nil {
		return ""
	}
	n := v.Page.Count()
	if n == 1 {
		return "Found 1 result"
	}
	return fmt.Sprintf("Found %d results", n)
}

// Heading returns "<artist> - <title>" for a lyrics view.
func (v View) Heading() string {
	if v.Kind != ViewLyrics || v.Lyrics == nil {
		return ""
	}
	return v.Lyrics.Heading()
}

// LyricsLines returns the lyrics split on every line-ending convention.
func (v View) LyricsLines() []string {
	if v.Kind != ViewLyrics || v.Lyrics == nil {
		return nil
	}
	return v.Lyrics.Lines()
}

// JoinLines places sep between consecutive lines and never after the last one.
func JoinLines(lines []string, sep string) string {
	return strings.Join(lines, sep)
}
