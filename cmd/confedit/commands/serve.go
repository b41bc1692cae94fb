package commands

import (
	"github.com/0xalexb/confedit"
	"github.com/0xalexb/confedit/listener"

	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP editing API",
		Long: `Start the editor as an HTTP service. Both documents are loaded once at
startup from the seeds named in the configuration file, or from the
embedded defaults. The process runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []confedit.Option{
				confedit.WithLogLevel(flags.logLevel),
				confedit.WithLogFormat(flags.logFormat),
				confedit.WithLogOutput(cmd.ErrOrStderr()),
			}

			if configPath != "" {
				opts = append(opts, confedit.WithConfigFile(configPath))
			}

			var listenerOpts []listener.Option
			if addr != "" {
				listenerOpts = append(listenerOpts, listener.WithAddress(addr))
			}

			app := confedit.NewApp(append(opts, confedit.WithEditor(listenerOpts...))...)
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML configuration file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides editor.listener.address")

	return cmd
}
