// Package services defines the [Client] interface for the remote lyrics service and implements it for lyrics.ovh.
//
// # Client Interface
//
// The browser component depends only on [Client], so tests and alternate front ends can swap in doubles.
//
// # lyrics.ovh Implementation
//
// [LyricsService] layers JSON decoding over [APIService], which performs raw GET requests.
//
//	GET {base}/suggest/{term}         → { data: [{ artist: { name }, title }], total, prev?, next? }
//	GET {base}/v1/{artist}/{title}    → { lyrics } | { error }
//
// Every user-supplied path segment is percent-encoded with [url.PathEscape].
// Pagination links are fetched exactly as the service returned them; relative links are
// resolved against the base URL first.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrTransport] : network failure, non-2xx status or malformed JSON
//   - [shared.ErrInvalidLink] : pagination link is empty, unparseable or not http(s)
//
// A lyrics lookup the service answers with { error } is not a Go error;
// it is returned as [models.LyricsResult] with Error set, even when the status is 404.
package services
