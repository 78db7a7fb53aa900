package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/browser"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	client     services.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Client     services.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		client:     opts.Client,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// Setup resolves the configuration named by --config and builds the lyrics client from it.
//
// A client injected through [RunnerOpts] is kept.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := shared.Resolve(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	r.config = config

	if err := shared.SetLogLevel(r.logger, config.Log.Level); err != nil {
		return ctx, err
	}

	if r.client == nil {
		r.httpClient = &http.Client{Timeout: config.Service.Timeout()}
	}

	r.logger.Debug("configured", "base_url", config.Service.BaseURL, "timeout", config.Service.Timeout())
	return ctx, nil
}

// SetLogger replaces the logger used by the runner and the components it builds.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, pageCommand, lyricsCommand, tuiCommand, serveCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// lyricsClient returns the configured client, building one from the config when none was injected.
func (r *Runner) lyricsClient() services.Client {
	if r.client == nil {
		api := services.NewAPIService(r.config.Service.BaseURL, r.httpClient)
		api.SetUserAgent(r.config.Service.UserAgent)
		r.client = services.NewLyricsService(api)
		r.logger.Debug("lyrics client ready", "base_url", api.BaseURL())
	}
	return r.client
}

func (r *Runner) browserOptions(notifier browser.Notifier) browser.Options {
	return browser.Options{
		Client:          r.lyricsClient(),
		Notifier:        notifier,
		Timeout:         r.config.Service.Timeout(),
		ShowResultCount: r.config.Display.ShowResultCount,
		Logger:          r.logger,
	}
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
