// package models defines the data model for the lyrics browser
package models

import (
	"fmt"
	"regexp"
)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// SongSummary is a single search hit.
type SongSummary struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// String renders the summary as "<artist> - <title>".
func (s SongSummary) String() string {
	return fmt.Sprintf("%s - %s", s.Artist, s.Title)
}

// SearchResultPage is one page of suggestions returned by the service.
//
// Prev and Next hold the service-provided pagination links and are empty when absent.
type SearchResultPage struct {
	Items []SongSummary `json:"items"`
	Total int           `json:"total,omitempty"`
	Prev  string        `json:"prev,omitempty"`
	Next  string        `json:"next,omitempty"`
}

func (p SearchResultPage) HasPrev() bool { return p.Prev != "" }
func (p SearchResultPage) HasNext() bool { return p.Next != "" }

// Count returns the total number of hits reported by the service, falling back to the page size.
func (p SearchResultPage) Count() int {
	if p.Total > 0 {
		return p.Total
	}
	return len(p.Items)
}

// Lyrics holds the full text for a song.
type Lyrics struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Text   string `json:"lyrics"`
}

// Heading renders "<artist> - <title>".
func (l Lyrics) Heading() string {
	return fmt.Sprintf("%s - %s", l.Artist, l.Title)
}

// Lines splits the text on CRLF, CR and LF.
func (l Lyrics) Lines() []string {
	return SplitLines(l.Text)
}

// SplitLines splits s on any of the CRLF, CR and LF line-ending conventions.
func SplitLines(s string) []string {
	return lineBreak.Split(s, -1)
}

// LyricsResult is the outcome of a lyrics lookup: either Lyrics or a service-reported Error.
type LyricsResult struct {
	Lyrics *Lyrics `json:"lyrics,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Found reports whether the lookup produced lyrics.
func (r LyricsResult) Found() bool {
	return r.Error == "" && r.Lyrics != nil
}
