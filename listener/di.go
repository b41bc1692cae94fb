package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NewModule creates an Fx module for a named HTTP listener.
// The name is used as the module name and as the DI named tag for the http.Handler,
// the Config and the resulting *Server.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally (e.g., via config.Provider).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(
			fx.Annotate(cfg, fx.ResultTags(tag)),
		))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(
			fx.Annotate(
				func(
					lifecycle fx.Lifecycle,
					shutdowner fx.Shutdowner,
					logger *slog.Logger,
					handler http.Handler,
					listenerCfg Config,
				) (*Server, error) {
					srv, err := NewServer(name, handler, listenerCfg, logger, func() {
						shutdownErr := shutdowner.Shutdown()
						if shutdownErr != nil {
							logger.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
						}
					})
					if err != nil {
						return nil, err
					}

					lifecycle.Append(fx.Hook{
						OnStart: srv.Start,
						OnStop:  srv.Stop,
					})

					return srv, nil
				},
				fx.ParamTags("", "", "", tag, tag),
				fx.ResultTags(tag),
			),
		),
		// Forces construction so the listener starts even when nothing else asks for it.
		fx.Invoke(fx.Annotate(func(*Server) {}, fx.ParamTags(tag))),
	)

	return fx.Module(name, moduleOpts...)
}
