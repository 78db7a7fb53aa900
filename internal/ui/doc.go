// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI wraps one [browser.Browser] and mirrors its single result area:
//  1. an empty area with a search prompt
//  2. a result list with Prev/Next navigation
//  3. a scrollable lyrics view
//  4. an in-place error message
//
// Requests run as [tea.Cmd] values and come back through the Msg union. A response that was
// superseded by a newer action is dropped, so the newest action always owns the result area.
//
// A blank search opens a notice that must be dismissed before any other key is handled.
package ui
