package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// User input errors
	ErrEmptyTerm       = fmt.Errorf("please type in a search term")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidLink     = fmt.Errorf("invalid pagination link")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Service and transport errors
	ErrTransport      = fmt.Errorf("request failed")
	ErrLyricsNotFound = fmt.Errorf("lyrics not found")

	// ErrSuperseded marks a response that arrived after a newer action started.
	ErrSuperseded = fmt.Errorf("superseded by a newer request")
)
