// package formatter renders browser views as plain text, Markdown, CSV, JSON or YAML for the CLI
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/lyrx/internal/browser"
	"github.com/desertthunder/lyrx/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case "md", FormatMarkdown:
		return FormatMarkdown, nil
	case "yml", FormatYAML:
		return FormatYAML, nil
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Render formats view in the requested format.
func Render(view browser.View, f Format, pretty bool) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return ExportToMarkdown(view)
	case FormatCSV:
		return ExportToCSV(view)
	case FormatJSON:
		return ToJSON(view, pretty)
	case FormatYAML:
		return ToYAML(view)
	default:
		return ExportToText(view)
	}
}

// ExportToCSV converts a result list to CSV with columns: Artist, Title
func ExportToCSV(view browser.View) ([]byte, error) {
	if view.Kind != browser.ViewResultList {
		return nil, fmt.Errorf("%w: csv output needs a result list, got %s", shared.ErrInvalidFlag, view.Kind)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Artist", "Title"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range view.Items() {
		if err := writer.Write([]string{song.Artist, song.Title}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a view to Markdown.
//
// Lyrics lines are separated with hard line breaks (two trailing spaces), none after the last line.
func ExportToMarkdown(view browser.View) ([]byte, error) {
	var buf bytes.Buffer

	switch view.Kind {
	case browser.ViewResultList:
		if h := view.ResultHeading(); h != "" {
			buf.WriteString(fmt.Sprintf("## %s\n\n", h))
		}
		for _, song := range view.Items() {
			buf.WriteString(fmt.Sprintf("- **%s** - %s\n", song.Artist, song.Title))
		}
		if view.HasPrev() || view.HasNext() {
			buf.WriteString("\n")
		}
		if view.HasPrev() {
			buf.WriteString(fmt.Sprintf("[Prev](%s)\n", view.Page.Prev))
		}
		if view.HasNext() {
			buf.WriteString(fmt.Sprintf("[Next](%s)\n", view.Page.Next))
		}
	case browser.ViewLyrics:
		buf.WriteString(fmt.Sprintf("## **%s** - %s\n\n", view.Lyrics.Artist, view.Lyrics.Title))
		buf.WriteString(browser.JoinLines(view.LyricsLines(), "  \n"))
		buf.WriteString("\n")
	case browser.ViewError:
		buf.WriteString(view.Message + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a view to plain text format
func ExportToText(view browser.View) ([]byte, error) {
	var buf bytes.Buffer

	switch view.Kind {
	case browser.ViewResultList:
		if h := view.ResultHeading(); h != "" {
			buf.WriteString(h + "\n\n")
		}
		for i, song := range view.Items() {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, song))
		}
		if view.HasPrev() {
			buf.WriteString(fmt.Sprintf("\nPrev: %s", view.Page.Prev))
		}
		if view.HasNext() {
			buf.WriteString(fmt.Sprintf("\nNext: %s", view.Page.Next))
		}
		if view.HasPrev() || view.HasNext() {
			buf.WriteString("\n")
		}
	case browser.ViewLyrics:
		buf.WriteString(view.Heading() + "\n\n")
		buf.WriteString(browser.JoinLines(view.LyricsLines(), "\n"))
		buf.WriteString("\n")
	case browser.ViewError:
		buf.WriteString(view.Message + "\n")
	}

	return buf.Bytes(), nil
}

// ToJSON encodes the view, adding the result heading when present.
func ToJSON(view browser.View, pretty bool) ([]byte, error) {
	payload := struct {
		browser.View
		Heading string `json:"heading,omitempty"`
	}{View: view}

	switch view.Kind {
	case browser.ViewResultList:
		payload.Heading = view.ResultHeading()
	case browser.ViewLyrics:
		payload.Heading = view.Heading()
	}

	return shared.MarshalJSON(payload, pretty)
}

type yamlSong struct {
	Artist string `yaml:"artist"`
	Title  string `yaml:"title"`
}

type yamlView struct {
	Kind    string     `yaml:"kind"`
	Heading string     `yaml:"heading,omitempty"`
	Items   []yamlSong `yaml:"items,omitempty"`
	Total   int        `yaml:"total,omitempty"`
	Prev    string     `yaml:"prev,omitempty"`
	Next    string     `yaml:"next,omitempty"`
	Lines   []string   `yaml:"lines,omitempty"`
	Message string     `yaml:"message,omitempty"`
}

// ToYAML encodes the view with lyrics already split into lines.
func ToYAML(view browser.View) ([]byte, error) {
	out := yamlView{Kind: view.Kind.String(), Message: view.Message}

	switch view.Kind {
	case browser.ViewResultList:
		out.Heading = view.ResultHeading()
		for _, song := range view.Items() {
			out.Items = append(out.Items, yamlSong{Artist: song.Artist, Title: song.Title})
		}
		if view.Page != nil {
			out.Total = view.Page.Total
			out.Prev = view.Page.Prev
			out.Next = view.Page.Next
		}
	case browser.ViewLyrics:
		out.Heading = view.Heading()
		out.Lines = view.LyricsLines()
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// WriteExport writes the rendered view to path.
func WriteExport(view browser.View, f Format, path string) error {
	data, err := Render(view, f, true)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", f, err)
	}
	return nil
}
