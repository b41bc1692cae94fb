// Package commands provides the CLI commands for confedit.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/confedit"
	"github.com/0xalexb/confedit/config"
	"github.com/0xalexb/confedit/config/fetcher/file"
	"github.com/0xalexb/confedit/config/parser/yaml"
	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/logging"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCmd builds the command tree. Seeds and exports go through fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "confedit",
		Short: "confedit - editor for feature and theme configuration documents",
		Long: `confedit loads a feature or theme configuration document, applies typed
edits to it and exports the result.

Run 'confedit serve' to start the HTTP editing API, or use 'render' and
'apply' for one-shot edits from the command line.`,
		Version:       confedit.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (json|text)")
	cmd.SetVersionTemplate(fmt.Sprintf("confedit %s\n", confedit.VersionString()))

	cmd.AddCommand(
		newServeCmd(flags),
		newRenderCmd(fs, flags),
		newApplyCmd(fs, flags),
	)

	return cmd
}

// Execute runs the root command against the operating system filesystem.
func Execute() error {
	return NewRootCmd(afero.NewOsFs()).Execute()
}

func (f *rootFlags) logger(cmd *cobra.Command) *slog.Logger {
	cfg := logging.LoggerConfig{Level: f.logLevel, Format: f.logFormat}
	cfg.SetDefaults()

	return logging.NewLogger(cfg, cmd.ErrOrStderr())
}

// loadSnapshot binds the seed at path, or the embedded seed when path is empty.
func loadSnapshot(fs afero.Fs, kindName, path string) (*store.Snapshot, error) {
	kind, err := schema.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	var seed []byte

	if path == "" {
		seed, err = store.LoadSeed(kind, "")
	} else {
		var fetcher *file.Fetcher

		fetcher, err = file.NewFetcherFs(fs, path)()
		if err == nil {
			seed, err = fetcher.Fetch()
		}
	}

	if err != nil {
		return nil, fmt.Errorf("loading %s seed: %w", kind, err)
	}

	return store.NewSnapshot(kind, seed)
}

// loadExportConfig reads the editor.export section of the config file at path.
// Without a file, or without the section, the defaults apply.
func loadExportConfig(fs afero.Fs, path string) (*export.Config, error) {
	var fetcher config.DataFetcher = config.StaticFetcher(nil)

	if path != "" {
		fileFetcher, err := file.NewFetcherFs(fs, path)()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		fetcher = fileFetcher
	}

	return config.OptionalProvider(&export.Config{}, confedit.SectionExport)(yaml.NewParser(), fetcher)
}
