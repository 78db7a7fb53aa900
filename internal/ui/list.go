package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lyrx/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.SongSummary] to implement [list.Item].
type songItem struct {
	song models.SongSummary
}

func (i songItem) FilterValue() string { return i.song.String() }
func (i songItem) Title() string       { return styles.artist.Render(i.song.Artist) + " - " + i.song.Title }
func (i songItem) Description() string { return "Get Lyrics" }

func songItems(songs []models.SongSummary) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

func newResultList() list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Results"
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
