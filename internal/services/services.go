// package services defines interface Client for the remote lyrics HTTP API
//
// lyrics.ovh (suggestions proxied from Deezer)
package services

import (
	"context"

	"github.com/desertthunder/lyrx/internal/models"
)

// Client defines the read-only operations the lyrics browser needs from the remote service.
type Client interface {
	// Suggest looks up songs matching a free-text term.
	Suggest(ctx context.Context, term string) (*models.SearchResultPage, error)

	// Page fetches a pagination link returned by a previous Suggest or Page call.
	Page(ctx context.Context, link string) (*models.SearchResultPage, error)

	// Lyrics looks up the lyrics for a song.
	// A service-reported failure is returned as a result with Error set, not as an error.
	Lyrics(ctx context.Context, artist, title string) (*models.LyricsResult, error)

	// Name returns the name of the service (e.g., "lyrics.ovh")
	Name() string
}
