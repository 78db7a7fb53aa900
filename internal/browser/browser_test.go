package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
	tu "github.com/desertthunder/lyrx/internal/testing"
)

func newTestBrowser(client *tu.MockClient, opts ...func(*Options)) (*Browser, *tu.RecordingNotifier) {
	notifier := &tu.RecordingNotifier{}
	o := Options{
		Client:   client,
		Notifier: notifier,
		Logger:   shared.NewLogger(&bytes.Buffer{}),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return New(o), notifier
}

func pageOf(next, prev string, songs ...models.SongSummary) *models.SearchResultPage {
	return &models.SearchResultPage{Items: songs, Next: next, Prev: prev}
}

func TestBrowserSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("blank terms never reach the network", func(t *testing.T) {
		for _, term := range []string{"", " ", "\t", "\n  \r\n", "\u00a0"} {
			t.Run(fmt.Sprintf("%q", term), func(t *testing.T) {
				client := &tu.MockClient{}
				b, notifier := newTestBrowser(client)

				view, err := b.Search(ctx, term)
				if !errors.Is(err, shared.ErrEmptyTerm) {
					t.Errorf("expected ErrEmptyTerm, got %v", err)
				}
				if len(client.Calls()) != 0 {
					t.Errorf("expected no requests, got %v", client.Calls())
				}
				if len(notifier.Messages) != 1 || notifier.Messages[0] != EmptyTermMessage {
					t.Errorf("expected one notification, got %v", notifier.Messages)
				}
				if view.Kind != ViewEmpty {
					t.Errorf("expected view to stay empty, got %s", view.Kind)
				}
			})
		}
	})

	t.Run("blank term leaves an existing view untouched", func(t *testing.T) {
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			return pageOf("", "", models.SongSummary{Artist: "Adele", Title: "Hello"}), nil
		}}
		b, _ := newTestBrowser(client)

		before, _ := b.Search(ctx, "adele")
		after, err := b.Search(ctx, "   ")
		if !errors.Is(err, shared.ErrEmptyTerm) {
			t.Fatalf("expected ErrEmptyTerm, got %v", err)
		}
		if !reflect.DeepEqual(before, after) {
			t.Errorf("expected view unchanged, got %+v", after)
		}
	})

	t.Run("valid term issues exactly one trimmed request", func(t *testing.T) {
		client := &tu.MockClient{}
		b, notifier := newTestBrowser(client)

		if _, err := b.Search(ctx, "  rolling in the deep "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		calls := client.Calls()
		if len(calls) != 1 || calls[0] != "suggest:rolling in the deep" {
			t.Errorf("expected one suggest call, got %v", calls)
		}
		if len(notifier.Messages) != 0 {
			t.Errorf("expected no notification, got %v", notifier.Messages)
		}
	})

	t.Run("round trip: search then follow next", func(t *testing.T) {
		client := &tu.MockClient{
			SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
				return pageOf("P2", "", models.SongSummary{Artist: "Adele", Title: "Hello"}), nil
			},
			PageFn: func(ctx context.Context, link string) (*models.SearchResultPage, error) {
				return pageOf("", "P1", models.SongSummary{Artist: "Adele", Title: "Skyfall"}, models.SongSummary{Artist: "Adele", Title: "Easy On Me"}), nil
			},
		}
		b, _ := newTestBrowser(client)

		view, err := b.Search(ctx, "adele")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Kind != ViewResultList {
			t.Fatalf("expected result list, got %s", view.Kind)
		}
		if items := view.Items(); len(items) != 1 || items[0].String() != "Adele - Hello" {
			t.Errorf("unexpected items %v", items)
		}
		if !view.HasNext() || view.HasPrev() {
			t.Errorf("expected Next only, got next=%v prev=%v", view.HasNext(), view.HasPrev())
		}

		view, err = b.FollowPageLink(ctx, view.Page.Next)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls := client.Calls(); calls[len(calls)-1] != "page:P2" {
			t.Errorf("expected request to P2, got %v", calls)
		}
		items := view.Items()
		if len(items) != 2 || items[0].Title != "Skyfall" || items[1].Title != "Easy On Me" {
			t.Errorf("expected list fully replaced, got %v", items)
		}
		if view.HasNext() || !view.HasPrev() {
			t.Errorf("expected Prev only after paging")
		}
	})

	t.Run("transport failure renders a recoverable error", func(t *testing.T) {
		fail := true
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			if fail {
				return nil, fmt.Errorf("%w: status 502", shared.ErrTransport)
			}
			return pageOf("", "", models.SongSummary{Artist: "Adele", Title: "Hello"}), nil
		}}
		b, _ := newTestBrowser(client)

		view, err := b.Search(ctx, "adele")
		if !errors.Is(err, shared.ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
		if view.Kind != ViewError || view.Message != "Request failed. Please try again." {
			t.Errorf("expected in-place error, got %+v", view)
		}

		fail = false
		view, err = b.Search(ctx, "adele")
		if err != nil || view.Kind != ViewResultList {
			t.Errorf("expected recovery on retry, got %+v, %v", view, err)
		}
	})

	t.Run("requests are bounded by the timeout", func(t *testing.T) {
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}}
		b, _ := newTestBrowser(client, func(o *Options) { o.Timeout = 20 * time.Millisecond })

		view, err := b.Search(ctx, "adele")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
		if view.Message != "Request timed out. Please try again." {
			t.Errorf("unexpected message %q", view.Message)
		}
	})

	t.Run("result count heading", func(t *testing.T) {
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			p := pageOf("", "", models.SongSummary{Artist: "Adele", Title: "Hello"})
			p.Total = 300
			return p, nil
		}}

		b, _ := newTestBrowser(client, func(o *Options) { o.ShowResultCount = true })
		view, _ := b.Search(ctx, "adele")
		if view.ResultHeading() != "Found 300 results" {
			t.Errorf("unexpected heading %q", view.ResultHeading())
		}

		b, _ = newTestBrowser(client)
		view, _ = b.Search(ctx, "adele")
		if view.ResultHeading() != "" {
			t.Errorf("expected no heading without the flag, got %q", view.ResultHeading())
		}
	})
}

func TestBrowserPagination(t *testing.T) {
	tc := []struct {
		name     string
		prev     string
		next     string
		wantPrev bool
		wantNext bool
	}{
		{name: "both", prev: "P1", next: "P3", wantPrev: true, wantNext: true},
		{name: "prev only", prev: "P1", wantPrev: true},
		{name: "next only", next: "P2", wantNext: true},
		{name: "neither"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
				return pageOf(tt.next, tt.prev, models.SongSummary{Artist: "A", Title: "B"}), nil
			}}
			b, _ := newTestBrowser(client)

			view, err := b.Search(context.Background(), "a")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.HasPrev() != tt.wantPrev {
				t.Errorf("HasPrev() = %v, want %v", view.HasPrev(), tt.wantPrev)
			}
			if view.HasNext() != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", view.HasNext(), tt.wantNext)
			}
		})
	}
}

func TestBrowserFetchLyrics(t *testing.T) {
	ctx := context.Background()

	t.Run("renders heading and lines", func(t *testing.T) {
		client := &tu.MockClient{LyricsFn: func(ctx context.Context, artist, title string) (*models.LyricsResult, error) {
			return &models.LyricsResult{Lyrics: &models.Lyrics{Artist: artist, Title: title, Text: "Line1\r\nLine2\nLine3"}}, nil
		}}
		b, _ := newTestBrowser(client)

		view, err := b.FetchLyrics(ctx, "Adele", "Hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Kind != ViewLyrics {
			t.Fatalf("expected lyrics view, got %s", view.Kind)
		}
		if view.Heading() != "Adele - Hello" {
			t.Errorf("unexpected heading %q", view.Heading())
		}

		body := JoinLines(view.LyricsLines(), "<br>")
		if body != "Line1<br>Line2<br>Line3" {
			t.Errorf("unexpected body %q", body)
		}
		if strings.Count(body, "<br>")+1 != len(view.LyricsLines()) {
			t.Errorf("expected breaks + 1 == lines")
		}
		if strings.HasSuffix(body, "<br>") {
			t.Error("expected no trailing break")
		}
		if view.Page != nil || view.Message != "" {
			t.Errorf("expected only lyrics content, got %+v", view)
		}
	})

	t.Run("service error renders only the message", func(t *testing.T) {
		client := &tu.MockClient{LyricsFn: func(ctx context.Context, artist, title string) (*models.LyricsResult, error) {
			return &models.LyricsResult{Error: "No lyrics found"}, nil
		}}
		b, _ := newTestBrowser(client)

		view, err := b.FetchLyrics(ctx, "X", "Y")
		if err != nil {
			t.Fatalf("service errors are not Go errors, got %v", err)
		}
		if view.Kind != ViewError || view.Message != "No lyrics found" {
			t.Errorf("expected error view, got %+v", view)
		}
		if view.Heading() != "" || view.LyricsLines() != nil || view.Lyrics != nil {
			t.Errorf("expected no heading or body, got %+v", view)
		}
	})

	t.Run("nil result is a transport error", func(t *testing.T) {
		client := &tu.MockClient{LyricsFn: func(ctx context.Context, artist, title string) (*models.LyricsResult, error) {
			return nil, nil
		}}
		b, _ := newTestBrowser(client)

		view, err := b.FetchLyrics(ctx, "X", "Y")
		if !errors.Is(err, shared.ErrTransport) || view.Kind != ViewError {
			t.Errorf("expected transport error view, got %+v, %v", view, err)
		}
	})

	t.Run("lyrics clear the result list", func(t *testing.T) {
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			return pageOf("P2", "", models.SongSummary{Artist: "Adele", Title: "Hello"}), nil
		}}
		b, _ := newTestBrowser(client)

		b.Search(ctx, "adele")
		view, _ := b.FetchLyrics(ctx, "Adele", "Hello")
		if view.Items() != nil || view.HasNext() || view.HasPrev() {
			t.Errorf("expected list and pagination cleared, got %+v", view)
		}
	})
}

func TestBrowserLastRequestWins(t *testing.T) {
	ctx := context.Background()

	t.Run("newer search cancels the in-flight one", func(t *testing.T) {
		started := make(chan struct{})
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			if term == "slow" {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return pageOf("", "", models.SongSummary{Artist: "Fast", Title: "Song"}), nil
		}}
		b, _ := newTestBrowser(client)

		type result struct {
			view View
			err  error
		}
		slow := make(chan result, 1)
		go func() {
			v, err := b.Search(ctx, "slow")
			slow <- result{v, err}
		}()

		<-started
		fast, err := b.Search(ctx, "fast")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		r := <-slow
		if !errors.Is(r.err, shared.ErrSuperseded) {
			t.Errorf("expected slow search to be superseded, got %v", r.err)
		}
		if got := b.View(); !reflect.DeepEqual(got, fast) || got.Items()[0].Artist != "Fast" {
			t.Errorf("expected newest view to win, got %+v", got)
		}
	})

	t.Run("late success is ignored", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		client := &tu.MockClient{
			SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
				close(started)
				<-release
				return pageOf("", "", models.SongSummary{Artist: "Stale", Title: "Song"}), nil
			},
			LyricsFn: func(ctx context.Context, artist, title string) (*models.LyricsResult, error) {
				return &models.LyricsResult{Lyrics: &models.Lyrics{Artist: artist, Title: title, Text: "la"}}, nil
			},
		}
		b, _ := newTestBrowser(client)

		done := make(chan error, 1)
		go func() {
			_, err := b.Search(ctx, "stale")
			done <- err
		}()

		<-started
		if _, err := b.FetchLyrics(ctx, "Adele", "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(release)

		if err := <-done; !errors.Is(err, shared.ErrSuperseded) {
			t.Errorf("expected ErrSuperseded, got %v", err)
		}
		if b.View().Kind != ViewLyrics {
			t.Errorf("expected lyrics view to remain, got %s", b.View().Kind)
		}
	})

	t.Run("reserved actions win in the order they were taken", func(t *testing.T) {
		client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
			return pageOf("", "", models.SongSummary{Artist: "Adele", Title: "Hello"}), nil
		}}
		b, _ := newTestBrowser(client)

		older := b.Begin(ctx)
		newer := b.Begin(ctx)
		if older.ctx.Err() == nil {
			t.Error("expected the older action to be cancelled when a newer one begins")
		}
		if newer.Generation() != b.Generation() || older.Generation() >= newer.Generation() {
			t.Errorf("unexpected generations: older=%d newer=%d", older.Generation(), newer.Generation())
		}

		if _, err := newer.Search("adele"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := older.FetchLyrics("Adele", "Hello"); !errors.Is(err, shared.ErrSuperseded) {
			t.Errorf("expected older action to be superseded, got %v", err)
		}
		if b.View().Kind != ViewResultList {
			t.Errorf("expected newer search to own the display, got %s", b.View().Kind)
		}
	})

	t.Run("blank search takes no action", func(t *testing.T) {
		b, _ := newTestBrowser(&tu.MockClient{})
		act := b.Begin(ctx)
		b.Search(ctx, " ")
		if act.ctx.Err() != nil || b.Generation() != act.Generation() {
			t.Error("expected a blank search to leave the request in flight alone")
		}
	})

	t.Run("generations increase per action", func(t *testing.T) {
		b, _ := newTestBrowser(&tu.MockClient{})
		v1, _ := b.Search(ctx, "a")
		v2, _ := b.FetchLyrics(ctx, "a", "b")
		if v2.Generation <= v1.Generation || b.Generation() != v2.Generation {
			t.Errorf("expected increasing generations, got %d then %d", v1.Generation, v2.Generation)
		}
	})
}

func TestBrowserBack(t *testing.T) {
	ctx := context.Background()
	client := &tu.MockClient{SuggestFn: func(ctx context.Context, term string) (*models.SearchResultPage, error) {
		return pageOf("P2", "", models.SongSummary{Artist: "Adele", Title: "Hello"}), nil
	}}
	b, _ := newTestBrowser(client)

	if _, ok := b.Back(); ok {
		t.Error("expected Back to fail before any results")
	}

	list, _ := b.Search(ctx, "adele")
	b.FetchLyrics(ctx, "Adele", "Hello")

	view, ok := b.Back()
	if !ok {
		t.Fatal("expected Back to succeed")
	}
	if !reflect.DeepEqual(view.Items(), list.Items()) || !view.HasNext() {
		t.Errorf("expected previous list re-rendered, got %+v", view)
	}
	if len(client.Calls()) != 2 {
		t.Errorf("expected Back not to issue requests, got %v", client.Calls())
	}
}

func TestRenderPageIsIdempotent(t *testing.T) {
	page := pageOf("P2", "P0", models.SongSummary{Artist: "Adele", Title: "Hello"})

	first := RenderPage(page, true)
	second := RenderPage(page, true)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical renders, got %+v and %+v", first, second)
	}
	if len(second.Items()) != 1 {
		t.Errorf("expected no accumulation, got %d items", len(second.Items()))
	}
}

func TestFailureMessage(t *testing.T) {
	tc := []struct {
		err  error
		want string
	}{
		{err: fmt.Errorf("%w: boom", shared.ErrTransport), want: "Request failed. Please try again."},
		{err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded), want: "Request timed out. Please try again."},
		{err: fmt.Errorf("%w: %q", shared.ErrInvalidLink, "P2"), want: "That page link is no longer valid. Please search again."},
	}

	for _, tt := range tc {
		if got := FailureMessage(tt.err); got != tt.want {
			t.Errorf("FailureMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestViewKindString(t *testing.T) {
	for kind, want := range map[ViewKind]string{ViewEmpty: "empty", ViewResultList: "result-list", ViewLyrics: "lyrics", ViewError: "error", ViewKind(9): "unknown"} {
		if kind.String() != want {
			t.Errorf("%d: got %s, want %s", kind, kind.String(), want)
		}
	}
}

func TestBrowserWithLyricsService(t *testing.T) {
	ctx := context.Background()

	t.Run("search, follow a relative next link, then fetch lyrics", func(t *testing.T) {
		srv := tu.NewLyricsServer(t)
		srv.SetSuggestion("adele", `{"data":[{"artist":{"name":"Adele"},"title":"Hello"}],"next":"P2"}`)
		srv.SetPage("P2", `{"data":[{"artist":{"name":"Adele"},"title":"Skyfall"}],"prev":"P1"}`)
		srv.SetLyrics("Adele", "Skyfall", "This is the end\nHold your breath")

		client := services.NewLyricsService(services.NewAPIService(srv.URL, nil))
		b := New(Options{Client: client, Logger: shared.NewLogger(&bytes.Buffer{})})

		view, err := b.Search(ctx, "adele")
		if err != nil || !view.HasNext() || view.Page.Next != "P2" {
			t.Fatalf("expected a Next link to P2, got %+v, %v", view.Page, err)
		}

		view, err = b.FollowPageLink(ctx, view.Page.Next)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items := view.Items(); len(items) != 1 || items[0].Title != "Skyfall" {
			t.Errorf("expected second page, got %v", items)
		}

		view, err = b.FetchLyrics(ctx, "Adele", "Skyfall")
		if err != nil || view.Kind != ViewLyrics {
			t.Fatalf("expected lyrics, got %+v, %v", view, err)
		}
		if lines := view.LyricsLines(); len(lines) != 2 {
			t.Errorf("expected two lines, got %v", lines)
		}

		want := []string{"/suggest/adele", "/P2", "/v1/Adele/Skyfall"}
		if got := srv.Requests(); !reflect.DeepEqual(got, want) {
			t.Errorf("expected requests %v, got %v", want, got)
		}
	})
}
