package models

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want []string
	}{
		{name: "mixed endings", in: "Line1\r\nLine2\nLine3", want: []string{"Line1", "Line2", "Line3"}},
		{name: "carriage returns", in: "a\rb\rc", want: []string{"a", "b", "c"}},
		{name: "single line", in: "only", want: []string{"only"}},
		{name: "trailing newline", in: "a\n", want: []string{"a", ""}},
		{name: "blank line preserved", in: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "crlf is one break", in: "a\r\nb", want: []string{"a", "b"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearchResultPage(t *testing.T) {
	t.Run("pagination presence", func(t *testing.T) {
		tc := []struct {
			name     string
			page     SearchResultPage
			wantPrev bool
			wantNext bool
		}{
			{name: "both", page: SearchResultPage{Prev: "P1", Next: "P3"}, wantPrev: true, wantNext: true},
			{name: "prev only", page: SearchResultPage{Prev: "P1"}, wantPrev: true},
			{name: "next only", page: SearchResultPage{Next: "P2"}, wantNext: true},
			{name: "neither", page: SearchResultPage{}},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.page.HasPrev(); got != tt.wantPrev {
					t.Errorf("HasPrev() = %v, want %v", got, tt.wantPrev)
				}
				if got := tt.page.HasNext(); got != tt.wantNext {
					t.Errorf("HasNext() = %v, want %v", got, tt.wantNext)
				}
			})
		}
	})

	t.Run("Count prefers total", func(t *testing.T) {
		page := SearchResultPage{Items: []SongSummary{{Artist: "A", Title: "B"}}, Total: 42}
		if page.Count() != 42 {
			t.Errorf("expected 42, got %d", page.Count())
		}
		page.Total = 0
		if page.Count() != 1 {
			t.Errorf("expected 1, got %d", page.Count())
		}
	})
}

func TestLyricsResult(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r := LyricsResult{Lyrics: &Lyrics{Artist: "Adele", Title: "Hello", Text: "x"}}
		if !r.Found() {
			t.Error("expected result to be found")
		}
		if r.Lyrics.Heading() != "Adele - Hello" {
			t.Errorf("unexpected heading %q", r.Lyrics.Heading())
		}
	})

	t.Run("error", func(t *testing.T) {
		r := LyricsResult{Error: "No lyrics found"}
		if r.Found() {
			t.Error("expected result not to be found")
		}
	})
}
