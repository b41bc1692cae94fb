package confedit

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/0xalexb/confedit/api"
	"github.com/0xalexb/confedit/config"
	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/listener"
	"github.com/0xalexb/confedit/store"

	"go.uber.org/fx"
)

// ListenerName names the editor's HTTP listener and tags its handler and config in DI.
const ListenerName = "editor"

// Configuration sections read by EditorModule.
const (
	SectionDocuments = "editor:documents"
	SectionExport    = "editor:export"
	SectionHTTP      = "editor:http"
	SectionListener  = "editor:listener"
)

// EditorModule wires the document store, the download sink and the HTTP API behind a
// listener named ListenerName. It expects a config.Parser, a config.DataFetcher and a
// *slog.Logger in the container, which NewApp supplies.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func EditorModule(opts ...listener.Option) fx.Option {
	tag := fmt.Sprintf(`name:"%s"`, ListenerName)

	return fx.Module("confedit",
		fx.Provide(
			config.OptionalProvider(&store.Config{}, SectionDocuments),
			config.OptionalProvider(&export.Config{}, SectionExport),
			config.OptionalProvider(&api.Config{}, SectionHTTP),
			fx.Annotate(listenerConfig(opts), fx.ResultTags(tag)),
			store.NewFromConfig,
			newDownloadSink,
			fx.Annotate(newHandler, fx.As(new(http.Handler)), fx.ResultTags(tag)),
		),
		listener.NewModule(ListenerName),
	)
}

// listenerConfig reads the listener section and applies opts on top of it.
func listenerConfig(opts []listener.Option) func(config.Parser, config.DataFetcher) (listener.Config, error) {
	return func(parser config.Parser, fetcher config.DataFetcher) (listener.Config, error) {
		cfg, err := config.OptionalProvider(&listener.Config{}, SectionListener)(parser, fetcher)
		if err != nil {
			return listener.Config{}, err
		}

		for _, apply := range opts {
			apply(cfg)
		}

		return *cfg, nil
	}
}

func newDownloadSink(lifecycle fx.Lifecycle, cfg *export.Config, logger *slog.Logger) *export.MemorySink {
	sink := export.NewMemorySink(
		export.WithTTL(cfg.TTL),
		export.WithLogger(logger),
	)

	lifecycle.Append(fx.Hook{
		OnStart: sink.Start,
		OnStop:  sink.Stop,
	})

	return sink
}

func newHandler(
	st *store.Store,
	sink *export.MemorySink,
	exportCfg *export.Config,
	httpCfg *api.Config,
	logger *slog.Logger,
) *api.Handler {
	return api.NewHandler(api.Params{
		Store:  st,
		Sink:   sink,
		Export: exportCfg,
		HTTP:   httpCfg,
		Logger: logger,
	})
}
