// Package models defines the data transfer objects shared by the lyrics service client, the browser component and every front end.
//
//   - [SongSummary] : one search hit, identified only by its (artist, title) pair
//   - [SearchResultPage] : one page of hits with optional Prev/Next links
//   - [Lyrics] : full lyrics text for a song
//   - [LyricsResult] : either [Lyrics] or a service-reported error message, never both
//
// Pages are produced fresh per request and replaced, not merged, by the next page fetched.
package models
