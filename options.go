package confedit

import (
	"io"

	"github.com/0xalexb/confedit/listener"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules    []fx.Option
	LogLevel   string
	LogFormat  string
	LogOutput  io.Writer
	ConfigFile string
	ConfigData []byte
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithEditor adds the editor service. Listener options override the editor:listener section.
func WithEditor(opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, EditorModule(opts...))
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name is used as both the Fx module name and the DI named tag for http.Handler and Config.
// When options are provided (e.g., WithAddress), Config is supplied to DI automatically.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithConfigFile reads the YAML configuration from path.
// Without a file every section falls back to its defaults.
func WithConfigFile(path string) Option {
	return func(opts *Options) {
		opts.ConfigFile = path
	}
}

// WithConfigData uses data as the YAML configuration. It takes precedence over WithConfigFile.
func WithConfigData(data []byte) Option {
	return func(opts *Options) {
		opts.ConfigData = data
	}
}

// WithLogLevel overrides the level of the logging section.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat overrides the format of the logging section: "json" or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput redirects log output. Defaults to os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
