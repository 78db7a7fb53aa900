// Package web implements a server-rendered web front end for the lyrics browser.
//
// # Routes
//
//	GET /                          → search form, empty result area
//	GET /search?term=              → result list (blank term: blocking notice, no request)
//	GET /page?link=                → follows a Prev/Next link
//	GET /lyrics?artist=&title=     → lyrics or the service's error message
//	GET /api/search?term=          → JSON view (CORS enabled)
//	GET /api/page?link=            → JSON view
//	GET /api/lyrics?artist=&title= → JSON view
//	GET /health                    → liveness
//	GET /metrics                   → Prometheus metrics
//
// Every request is one user action served by a fresh [browser.Browser], so the rendered
// page always holds exactly one view. A browser tab supersedes older requests itself by
// replacing the document on navigation.
//
// Transport failures render in place with a 5xx status; they never crash the server.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/browser"
	"github.com/desertthunder/lyrx/internal/formatter"
	"github.com/desertthunder/lyrx/internal/server"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Options configures an [App].
type Options struct {
	Client          services.Client
	Timeout         time.Duration
	ShowResultCount bool
	AllowedOrigins  []string
	Logger          *log.Logger
}

// App serves the web front end.
type App struct {
	client          services.Client
	timeout         time.Duration
	showResultCount bool
	origins         []string
	logger          *log.Logger
	tmpl            *template.Template
	metrics         *server.Metrics
}

type pageData struct {
	Term          string
	Notice        string
	ResultHeading string
	View          browser.View
}

// New parses the embedded templates and returns an [App].
func New(opts Options) (*App, error) {
	if opts.Client == nil {
		opts.Client = services.NewLyricsService(nil)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &App{
		client:          opts.Client,
		timeout:         opts.Timeout,
		showResultCount: opts.ShowResultCount,
		origins:         opts.AllowedOrigins,
		logger:          opts.Logger,
		tmpl:            tmpl,
		metrics:         server.NewMetrics("lyrx"),
	}, nil
}

// Handler builds the routed, middleware-wrapped handler.
func (a *App) Handler() http.Handler {
	r := server.NewBasicRouter()
	r.Use(server.Recover(a.logger), server.RequestID(), server.Logging(a.logger), a.metrics.Middleware())

	r.Handle(http.MethodGet, "/", http.HandlerFunc(a.Index))
	r.Handle(http.MethodGet, "/search", http.HandlerFunc(a.Search))
	r.Handle(http.MethodGet, "/page", http.HandlerFunc(a.Page))
	r.Handle(http.MethodGet, "/lyrics", http.HandlerFunc(a.Lyrics))
	r.Handle(http.MethodGet, "/health", http.HandlerFunc(a.Health))
	r.Handle(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Use(server.CORS(a.origins))
	r.Handler(&apiHandler{app: a})

	return r
}

// newBrowser returns a single-action browser whose blocking notices land in notice.
func (a *App) newBrowser(r *http.Request, notice *string) *browser.Browser {
	return browser.New(browser.Options{
		Client:          a.client,
		Notifier:        browser.NotifierFunc(func(msg string) { *notice = msg }),
		Timeout:         a.timeout,
		ShowResultCount: a.showResultCount,
		Logger:          shared.WithLogger(a.logger, "request_id", server.RequestIDFrom(r.Context())),
	})
}

// Index serves the empty search page.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, pageData{View: browser.View{Kind: browser.ViewEmpty}})
}

// Search renders the result list for ?term=.
func (a *App) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	data := pageData{Term: term}

	b := a.newBrowser(r, &data.Notice)
	view, err := b.Search(r.Context(), term)
	a.respond(w, data, view, err)
}

// Page follows ?link=.
func (a *App) Page(w http.ResponseWriter, r *http.Request) {
	var data pageData
	b := a.newBrowser(r, &data.Notice)
	view, err := b.FollowPageLink(r.Context(), r.URL.Query().Get("link"))
	a.respond(w, data, view, err)
}

// Lyrics renders lyrics for ?artist=&title=.
func (a *App) Lyrics(w http.ResponseWriter, r *http.Request) {
	artist, title := r.URL.Query().Get("artist"), r.URL.Query().Get("title")
	if artist == "" || title == "" {
		a.render(w, http.StatusBadRequest, pageData{View: browser.RenderError("Missing artist or title")})
		return
	}

	var data pageData
	b := a.newBrowser(r, &data.Notice)
	view, err := b.FetchLyrics(r.Context(), artist, title)
	a.respond(w, data, view, err)
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (a *App) respond(w http.ResponseWriter, data pageData, view browser.View, err error) {
	data.View = view
	data.ResultHeading = view.ResultHeading()
	a.render(w, StatusFor(err), data)
}

func (a *App) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		a.logger.Error("failed to render template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// StatusFor maps an operation error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil, errors.Is(err, shared.ErrEmptyTerm):
		return http.StatusOK
	case errors.Is(err, shared.ErrInvalidLink):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// apiHandler serves the JSON API under /api/.
type apiHandler struct {
	app *App
}

func (h *apiHandler) Routes() []string {
	return []string{"/api/search", "/api/page", "/api/lyrics"}
}

func (h *apiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var notice string
	b := h.app.newBrowser(r, &notice)
	q := r.URL.Query()

	var (
		view browser.View
		err  error
	)
	switch r.URL.Path {
	case "/api/search":
		view, err = b.Search(r.Context(), q.Get("term"))
	case "/api/page":
		view, err = b.FollowPageLink(r.Context(), q.Get("link"))
	case "/api/lyrics":
		if q.Get("artist") == "" || q.Get("title") == "" {
			h.writeError(w, http.StatusBadRequest, "missing artist or title")
			return
		}
		view, err = b.FetchLyrics(r.Context(), q.Get("artist"), q.Get("title"))
	}

	if errors.Is(err, shared.ErrEmptyTerm) {
		h.writeError(w, http.StatusBadRequest, notice)
		return
	}

	data, merr := formatter.ToJSON(view, false)
	if merr != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(err))
	w.Write(data)
}

func (h *apiHandler) writeError(w http.ResponseWriter, status int, msg string) {
	data, _ := shared.MarshalJSON(map[string]string{"error": msg}, false)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
