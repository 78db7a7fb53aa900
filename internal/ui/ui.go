package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyrx/internal/browser"
	"github.com/desertthunder/lyrx/internal/shared"
)

// Focus tells which part of the screen receives keys.
type Focus int

const (
	SearchFocus Focus = iota
	ResultFocus
)

// chrome is the number of lines taken by the title, input, hints and help.
const chrome = 9

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	browser *browser.Browser
	focus   Focus
	view    browser.View
	notice  string
	loading bool
	width   int
	height  int
	input   textinput.Model
	results list.Model
	lyrics  viewport.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a TUI model around a new [browser.Browser]. The notifier in opts is replaced by the notice overlay.
func NewModel(ctx context.Context, opts browser.Options) *Model {
	m := &Model{
		ctx:     ctx,
		focus:   SearchFocus,
		results: newResultList(),
		lyrics:  viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok)),
		help:    help.New(),
		keys:    newKeyMap(),
	}

	m.input = textinput.New()
	m.input.Placeholder = "Search artist or song"
	m.input.Prompt = "> "
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.input.Focus()

	// Blank terms are rejected synchronously inside Update, so the notifier never races the event loop.
	opts.Notifier = browser.NotifierFunc(func(msg string) { m.notice = msg })
	m.browser = browser.New(opts)
	m.view = m.browser.View()
	return m
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.notice != "" {
			return m.handleNoticeKeys(msg)
		}
		if m.focus == SearchFocus {
			return m.handleSearchKeys(msg)
		}
		return m.handleResultKeys(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.apply(msg)
	}

	return m, nil
}

// apply shows the view carried by a request message unless a newer action superseded it.
func (m *Model) apply(msg Msg) (tea.Model, tea.Cmd) {
	r := msg.payload()
	if errors.Is(r.err, shared.ErrSuperseded) || r.gen != m.browser.Generation() {
		return m, nil
	}

	m.loading = false
	m.show(r.view)
	return m, nil
}

// show replaces the result area with v.
func (m *Model) show(v browser.View) {
	m.view = v
	switch v.Kind {
	case browser.ViewResultList:
		m.results.SetItems(songItems(v.Items()))
		m.results.ResetSelected()
		if heading := v.ResultHeading(); heading != "" {
			m.results.Title = heading
		} else {
			m.results.Title = "Results"
		}
	case browser.ViewLyrics:
		m.lyrics.SetContent(browser.JoinLines(v.LyricsLines(), "\n"))
		m.lyrics.GotoTop()
	}
}

func (m *Model) resize() {
	w := max(m.width-4, 0)
	h := max(m.height-chrome, 1)
	m.input.Width = max(w-len(m.input.Prompt), 0)
	m.results.SetSize(w, h)
	m.lyrics.Width = w
	m.lyrics.Height = max(h-2, 1)
}

func (m *Model) handleNoticeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.dismiss):
		m.notice = ""
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.view.Kind != browser.ViewEmpty {
			m.blurInput()
		}
		return m, nil
	case "enter":
		return m, m.submit(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.focus = SearchFocus
		m.input.Focus()
		m.input.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		if m.view.HasPrev() {
			return m, m.followPage(m.view.Page.Prev)
		}
		return m, nil
	case key.Matches(msg, m.keys.next):
		if m.view.HasNext() {
			return m, m.followPage(m.view.Page.Next)
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		if m.view.Kind == browser.ViewLyrics || m.view.Kind == browser.ViewError || m.loading {
			if view, ok := m.browser.Back(); ok {
				m.loading = false
				m.show(view)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if m.view.Kind != browser.ViewResultList {
			return m, nil
		}
		if item, ok := m.results.SelectedItem().(songItem); ok {
			return m, m.fetchLyrics(item.song.Artist, item.song.Title)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view.Kind {
	case browser.ViewResultList:
		m.results, cmd = m.results.Update(msg)
	case browser.ViewLyrics:
		m.lyrics, cmd = m.lyrics.Update(msg)
	}
	return m, cmd
}

func (m *Model) blurInput() {
	m.focus = ResultFocus
	m.input.Blur()
}

// submit starts a search. A blank term is rejected by the browser before any request, which
// raises the notice overlay.
//
// Actions are reserved here, on the event loop, so the request commands may run in any order.
func (m *Model) submit(term string) tea.Cmd {
	if strings.TrimSpace(term) == "" {
		m.browser.Search(m.ctx, term)
		return nil
	}

	m.blurInput()
	act := m.browser.Begin(m.ctx)
	return m.request(func() tea.Msg {
		view, err := act.Search(term)
		return resultsFetchedMsg(act.Generation(), view, err)
	})
}

func (m *Model) followPage(link string) tea.Cmd {
	act := m.browser.Begin(m.ctx)
	return m.request(func() tea.Msg {
		view, err := act.FollowPageLink(link)
		return resultsFetchedMsg(act.Generation(), view, err)
	})
}

func (m *Model) fetchLyrics(artist, title string) tea.Cmd {
	act := m.browser.Begin(m.ctx)
	return m.request(func() tea.Msg {
		view, err := act.FetchLyrics(artist, title)
		return lyricsFetchedMsg(act.Generation(), view, err)
	})
}

func (m *Model) request(cmd tea.Cmd) tea.Cmd {
	m.loading = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("lyrx"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(styles.notice.Render(m.notice))
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.dismiss}))
		return b.String()
	}

	b.WriteString(m.renderResultArea())
	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderResultArea() string {
	if m.loading {
		return fmt.Sprintf("%s Loading...", m.spinner.View())
	}

	switch m.view.Kind {
	case browser.ViewResultList:
		return m.results.View()
	case browser.ViewLyrics:
		heading := styles.artist.Render(m.view.Lyrics.Artist) + " - " + m.view.Lyrics.Title
		return fmt.Sprintf("%s\n\n%s", heading, m.lyrics.View())
	case browser.ViewError:
		return styles.err.Render(m.view.Message)
	default:
		return styles.help.Render("Type a search term and press enter")
	}
}

// renderHelp lists only the bindings that apply to the current view.
func (m *Model) renderHelp() string {
	if m.focus == SearchFocus {
		submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
		return m.help.ShortHelpView([]key.Binding{submit, m.keys.back})
	}

	bindings := []key.Binding{}
	switch m.view.Kind {
	case browser.ViewResultList:
		bindings = append(bindings, m.keys.up, m.keys.down, m.keys.enter)
		if m.view.HasPrev() {
			bindings = append(bindings, m.keys.prev)
		}
		if m.view.HasNext() {
			bindings = append(bindings, m.keys.next)
		}
	case browser.ViewLyrics:
		bindings = append(bindings, m.keys.up, m.keys.down, m.keys.back)
	case browser.ViewError:
		bindings = append(bindings, m.keys.back)
	}
	bindings = append(bindings, m.keys.search, m.keys.quit)
	return m.help.ShortHelpView(bindings)
}

// Browser exposes the component the model drives.
func (m *Model) Browser() *browser.Browser { return m.browser }
