// Package browser implements the lyrics browser component shared by the CLI, TUI and web front ends.
//
// A [Browser] owns the result area: exactly one [View] is current at a time, and every
// operation replaces it wholesale.
//
//	Empty ──search/page──▶ ResultList ──lyrics──▶ Lyrics
//	                          │  ▲                  │
//	                          │  └──search/page─────┘
//	                          └──lyrics error──▶ Error
//
// Each user action takes a new generation and cancels the previous in-flight request.
// A response is applied only while its generation is current; late responses return
// [shared.ErrSuperseded] and leave the view untouched.
//
// Blank search terms never reach the network; they are reported through the [Notifier].
package browser
