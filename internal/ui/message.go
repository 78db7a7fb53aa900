package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyrx/internal/browser"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgResultsFetched MsgKind = iota
	MsgLyricsFetched
)

// rendered is the payload of every request message: the generation reserved when the user
// acted, the view the browser produced and its error.
type rendered struct {
	gen  uint64
	view browser.View
	err  error
}

// resultsFetchedMsg is the constructor for [MsgResultsFetched]
func resultsFetchedMsg(gen uint64, view browser.View, err error) Msg {
	return Msg{kind: MsgResultsFetched, data: rendered{gen, view, err}}
}

// lyricsFetchedMsg is the constructor for [MsgLyricsFetched]
func lyricsFetchedMsg(gen uint64, view browser.View, err error) Msg {
	return Msg{kind: MsgLyricsFetched, data: rendered{gen, view, err}}
}

func (m Msg) payload() rendered {
	r, _ := m.data.(rendered)
	return r
}
