package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
)

const (
	// DefaultTimeout bounds each request when [Options.Timeout] is unset.
	DefaultTimeout = 10 * time.Second

	// EmptyTermMessage is shown when a search is submitted without a term.
	EmptyTermMessage = "Please type in a search term"
)

// Notifier shows a blocking notification to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Options configures a [Browser].
type Options struct {
	Client          services.Client
	Notifier        Notifier
	Timeout         time.Duration
	ShowResultCount bool
	Logger          *log.Logger
}

// Browser is the lyrics browser component. It is safe for concurrent use; the newest action always wins.
type Browser struct {
	client          services.Client
	notifier        Notifier
	timeout         time.Duration
	showResultCount bool
	logger          *log.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	view       View
	lastPage   *models.SearchResultPage
}

// New creates a [Browser] with an empty view.
func New(opts Options) *Browser {
	if opts.Client == nil {
		opts.Client = services.NewLyricsService(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(string) {})
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Browser{
		client:          opts.Client,
		notifier:        opts.Notifier,
		timeout:         opts.Timeout,
		showResultCount: opts.ShowResultCount,
		logger:          opts.Logger,
		view:            View{Kind: ViewEmpty},
	}
}

// View returns the current view.
func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Generation returns the generation of the most recent action.
func (b *Browser) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

// Action is one user action reserved with [Browser.Begin]. Taking a newer action supersedes it
// and cancels its request. An Action runs once.
type Action struct {
	b      *Browser
	ctx    context.Context
	gen    uint64
	cancel context.CancelFunc
}

// Begin reserves the display for a new action and cancels the request in flight.
//
// Front ends that run requests off the event loop call Begin when the user acts, so the
// newest action wins whatever order the requests later run in.
func (b *Browser) Begin(ctx context.Context) *Action {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel()
	}
	b.generation++

	actx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	return &Action{b: b, ctx: actx, gen: b.generation, cancel: cancel}
}

// Generation returns the generation reserved for the action.
func (a *Action) Generation() uint64 { return a.gen }

// start derives the request context bounded by the timeout. done releases it.
func (a *Action) start() (context.Context, context.CancelFunc) {
	ctx, stop := context.WithTimeout(a.ctx, a.b.timeout)
	return ctx, func() {
		stop()
		a.cancel()
	}
}

// Search looks up songs matching term and renders them as a result list.
//
// A blank term is rejected through the [Notifier] with [shared.ErrEmptyTerm]; no request is made
// and no action is taken, so a request in flight keeps running.
func (b *Browser) Search(ctx context.Context, term string) (View, error) {
	if strings.TrimSpace(term) == "" {
		b.notifier.Notify(EmptyTermMessage)
		return b.View(), shared.ErrEmptyTerm
	}
	return b.Begin(ctx).Search(term)
}

// FollowPageLink fetches a Prev/Next link from the current result list and replaces the list with it.
func (b *Browser) FollowPageLink(ctx context.Context, link string) (View, error) {
	return b.Begin(ctx).FollowPageLink(link)
}

// FetchLyrics looks up lyrics for a song from the result list.
//
// A service-reported error renders an error view and is not returned as an error.
func (b *Browser) FetchLyrics(ctx context.Context, artist, title string) (View, error) {
	return b.Begin(ctx).FetchLyrics(artist, title)
}

// Search runs [Browser.Search] under the reserved generation.
func (a *Action) Search(term string) (View, error) {
	b := a.b
	ctx, done := a.start()
	defer done()

	term = strings.TrimSpace(term)
	if term == "" {
		b.notifier.Notify(EmptyTermMessage)
		return b.View(), shared.ErrEmptyTerm
	}

	logger := b.requestLogger(a.gen, "search")
	logger.Info("searching", "term", term)

	page, err := b.client.Suggest(ctx, term)
	if err != nil {
		return b.fail(a.gen, logger, err)
	}
	return b.showPage(a.gen, logger, page)
}

// FollowPageLink runs [Browser.FollowPageLink] under the reserved generation.
func (a *Action) FollowPageLink(link string) (View, error) {
	b := a.b
	ctx, done := a.start()
	defer done()

	logger := b.requestLogger(a.gen, "page")
	logger.Info("following page link", "link", link)

	page, err := b.client.Page(ctx, link)
	if err != nil {
		return b.fail(a.gen, logger, err)
	}
	return b.showPage(a.gen, logger, page)
}

// FetchLyrics runs [Browser.FetchLyrics] under the reserved generation.
func (a *Action) FetchLyrics(artist, title string) (View, error) {
	b := a.b
	ctx, done := a.start()
	defer done()

	logger := b.requestLogger(a.gen, "lyrics")
	logger.Info("fetching lyrics", "artist", artist, "title", title)

	result, err := b.client.Lyrics(ctx, artist, title)
	if err != nil {
		return b.fail(a.gen, logger, err)
	}
	if result == nil {
		return b.fail(a.gen, logger, fmt.Errorf("%w: empty response", shared.ErrTransport))
	}

	view := RenderLyrics(result)
	if view.Kind == ViewError {
		logger.Warn("service reported an error", "error", view.Message)
	}
	return b.commit(a.gen, view, nil)
}

// Back re-renders the last result list without a request, superseding anything in flight.
//
// It returns false when no result list has been shown yet.
func (b *Browser) Back() (View, bool) {
	b.mu.Lock()
	page := b.lastPage
	b.mu.Unlock()
	if page == nil {
		return b.View(), false
	}

	act := b.Begin(context.Background())
	defer act.cancel()

	view, err := b.commit(act.gen, RenderPage(page, b.showResultCount), page)
	return view, err == nil
}

// Close cancels any in-flight request.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// commit applies view if gen is still current.
func (b *Browser) commit(gen uint64, view View, page *models.SearchResultPage) (View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		return b.view, shared.ErrSuperseded
	}

	view.Generation = gen
	b.view = view
	if page != nil {
		b.lastPage = page
	}
	b.cancel = nil
	return view, nil
}

func (b *Browser) showPage(gen uint64, logger *log.Logger, page *models.SearchResultPage) (View, error) {
	if page == nil {
		page = &models.SearchResultPage{}
	}
	logger.Debug("rendering results", "items", len(page.Items), "prev", page.HasPrev(), "next", page.HasNext())
	return b.commit(gen, RenderPage(page, b.showResultCount), page)
}

// fail renders err in place. The returned error is for logging; the view already reflects it.
func (b *Browser) fail(gen uint64, logger *log.Logger, err error) (View, error) {
	if view, stale := b.stale(gen); stale {
		logger.Debug("dropping superseded response", "error", err)
		return view, shared.ErrSuperseded
	}

	logger.Error("request failed", "error", err)
	view, cerr := b.commit(gen, RenderError(FailureMessage(err)), nil)
	if cerr != nil {
		return view, cerr
	}
	return view, err
}

func (b *Browser) stale(gen uint64) (View, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view, gen != b.generation
}

func (b *Browser) requestLogger(gen uint64, op string) *log.Logger {
	return shared.WithLogger(b.logger, "op", op, "generation", gen, "request_id", shared.GenerateID())
}

// FailureMessage turns a request error into the message shown in the error view.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Please try again."
	case errors.Is(err, shared.ErrInvalidLink):
		return "That page link is no longer valid. Please search again."
	default:
		return "Request failed. Please try again."
	}
}
