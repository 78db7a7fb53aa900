package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/lyrx/internal/browser"
	"github.com/desertthunder/lyrx/internal/formatter"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search looks up songs matching the term argument.
//
// A blank term prints the notice and fails with [shared.ErrEmptyTerm] without a request.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	b := browser.New(r.browserOptions(r.notifier()))
	view, err := b.Search(ctx, cmd.StringArg("term"))
	if errors.Is(err, shared.ErrEmptyTerm) {
		return err
	}
	return r.present(cmd, format, view, err)
}

// Page follows a Prev/Next link printed by a previous search.
func (r *Runner) Page(ctx context.Context, cmd *cli.Command) error {
	link := cmd.StringArg("link")
	if strings.TrimSpace(link) == "" {
		return fmt.Errorf("%w: link is required", shared.ErrMissingArgument)
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	b := browser.New(r.browserOptions(r.notifier()))
	view, err := b.FollowPageLink(ctx, link)
	return r.present(cmd, format, view, err)
}

// Lyrics fetches the lyrics for the artist and title arguments.
//
// A service-reported error is printed and returned as [shared.ErrLyricsNotFound].
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	artist, title := cmd.StringArg("artist"), cmd.StringArg("title")
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: artist and title are required", shared.ErrMissingArgument)
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	b := browser.New(r.browserOptions(r.notifier()))
	view, err := b.FetchLyrics(ctx, artist, title)
	if err := r.present(cmd, format, view, err); err != nil {
		return err
	}
	if view.Kind == browser.ViewError {
		return fmt.Errorf("%w: %s", shared.ErrLyricsNotFound, view.Message)
	}
	return nil
}

// notifier prints blocking notices straight to the output.
func (r *Runner) notifier() browser.Notifier {
	return browser.NotifierFunc(func(msg string) {
		r.writePlain("%s\n", msg)
	})
}

func outputFormat(cmd *cli.Command) (formatter.Format, error) {
	if cmd.Bool("json") {
		return formatter.FormatJSON, nil
	}
	return formatter.ParseFormat(cmd.String("format"))
}

// present writes view in format, to --output when set. The view is written even when the
// request failed so the in-place error message reaches the user; reqErr is then returned.
func (r *Runner) present(cmd *cli.Command, format formatter.Format, view browser.View, reqErr error) error {
	if path := cmd.String("output"); path != "" && reqErr == nil {
		if err := formatter.WriteExport(view, format, path); err != nil {
			return err
		}
		r.logger.Info("exported", "format", format, "path", path)
		return nil
	}

	// CSV only describes result lists; fall back to text for anything else.
	if format == formatter.FormatCSV && view.Kind != browser.ViewResultList {
		format = formatter.FormatText
	}

	data, err := formatter.Render(view, format, cmd.Bool("pretty"))
	if err != nil {
		return err
	}
	if !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return reqErr
}
