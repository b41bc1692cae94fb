// Package confedit assembles the configuration editor service on top of Fx.
package confedit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xalexb/confedit/config"
	filefetcher "github.com/0xalexb/confedit/config/fetcher/file"
	yamlparser "github.com/0xalexb/confedit/config/parser/yaml"
	"github.com/0xalexb/confedit/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for application using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	fetcher, err := configSource(options)
	if err != nil {
		return fx.New(fx.NopLogger, fx.Error(err))
	}

	parser := yamlparser.NewParser()

	loggerCfg, err := loggerConfig(options, parser, fetcher)
	if err != nil {
		return fx.New(fx.NopLogger, fx.Error(err))
	}

	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	logger := logging.NewLogger(loggerCfg, output)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(
			loggerCfg,
			logger,
			fx.Annotate(parser, fx.As(new(config.Parser))),
			fx.Annotate(fetcher, fx.As(new(config.DataFetcher))),
		),
		fx.Options(options.Modules...),
	)
}

// configSource picks the configuration bytes: explicit data, then the file, then an empty document.
func configSource(options *Options) (config.DataFetcher, error) {
	switch {
	case options.ConfigData != nil:
		return config.StaticFetcher(options.ConfigData), nil
	case options.ConfigFile != "":
		fetcher, err := filefetcher.NewFetcher(options.ConfigFile)()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		return fetcher, nil
	default:
		return config.StaticFetcher(nil), nil
	}
}

// loggerConfig reads the logging section and applies the level and format overrides.
func loggerConfig(options *Options, parser config.Parser, fetcher config.DataFetcher) (logging.LoggerConfig, error) {
	cfg := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	loaded, err := config.OptionalProvider(&logging.LoggerConfig{}, "logging")(parser, fetcher)
	if err != nil {
		return cfg, fmt.Errorf("loading logging config: %w", err)
	}

	if cfg.Level == "" {
		cfg.Level = loaded.Level
	}

	if cfg.Format == "" {
		cfg.Format = loaded.Format
	}

	err = cfg.Validate()
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Err reports a configuration or wiring error detected while building the app.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
