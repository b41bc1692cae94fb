package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrBadEdit is returned for an edit flag that does not follow its documented form.
var ErrBadEdit = errors.New("malformed edit")

type applyFlags struct {
	configPath    string
	kind          string
	seed          string
	out           string
	mode          string
	toggles       []string
	options       []string
	toggleOptions []string
	sets          []string
}

func newApplyCmd(fs afero.Fs, flags *rootFlags) *cobra.Command {
	af := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply edits to a document and write the export",
		Long: `Apply a sequence of edits to a seed document and write the export file
into the output directory. Edits run in this order: --toggle, --option,
--toggle-option, --set. The first rejected edit aborts the run and
nothing is written.

The output directory and export mode default to the editor.export section
of the --config file, then to "exports" and "render".`,
		Example: `  confedit apply --kind features --toggle order_screen --option global:darkMode=true
  confedit apply --kind themes --seed theme.json --set "0:colors.primary=#fff" --out exports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exportCfg, err := loadExportConfig(fs, af.configPath)
			if err != nil {
				return err
			}

			exportMode, out, err := af.target(exportCfg)
			if err != nil {
				return err
			}

			commands, err := af.commands()
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(fs, af.kind, af.seed)
			if err != nil {
				return err
			}

			logger := flags.logger(cmd)

			for _, c := range commands {
				snap, err = store.Apply(snap, c)
				if err != nil {
					return err
				}

				logger.Debug("edit applied", "command", c.Name(), "version", snap.Version())
			}

			data, filename, err := export.Document(snap, exportMode)
			if err != nil {
				return err
			}

			sink := export.NewFileSink(fs, out)

			return export.Deliver(cmd.Context(), sink, data, filename, func(h export.Handle) error {
				logger.Info("export written", "location", h.Location, "size", h.Size, "edits", len(commands))

				_, err := fmt.Fprintln(cmd.OutOrStdout(), h.Location)

				return err
			})
		},
	}

	cmd.Flags().StringVarP(&af.configPath, "config", "c", "", "Path to the YAML configuration file")
	cmd.Flags().StringVarP(&af.kind, "kind", "k", "", "Document kind (features|themes)")
	cmd.Flags().StringVarP(&af.seed, "seed", "s", "", "Seed file, the embedded default when empty")
	cmd.Flags().StringVarP(&af.out, "out", "o", "", "Output directory, editor.export.dir when empty")
	cmd.Flags().StringVarP(&af.mode, "mode", "m", "", "Export mode (render|preserve), editor.export.mode when empty")
	cmd.Flags().StringArrayVar(&af.toggles, "toggle", nil, "Toggle screen visibility: SCREEN")
	cmd.Flags().StringArrayVar(&af.options, "option", nil,
		"Set an option: screen:SCREEN:OPTION=BOOL or global:OPTION=BOOL")
	cmd.Flags().StringArrayVar(&af.toggleOptions, "toggle-option", nil,
		"Flip an option: screen:SCREEN:OPTION or global:OPTION")
	cmd.Flags().StringArrayVar(&af.sets, "set", nil, "Set a theme field: INDEX:PATH=VALUE")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

// target resolves the export mode and directory; flags win over the config section.
func (af *applyFlags) target(cfg *export.Config) (export.Mode, string, error) {
	mode := cfg.Mode

	if af.mode != "" {
		parsed, err := export.ParseMode(af.mode)
		if err != nil {
			return "", "", err
		}

		mode = parsed
	}

	out := cfg.Dir
	if af.out != "" {
		out = af.out
	}

	return mode, out, nil
}

func (af *applyFlags) commands() ([]store.Command, error) {
	commands := make([]store.Command, 0, len(af.toggles)+len(af.options)+len(af.toggleOptions)+len(af.sets))

	for _, screen := range af.toggles {
		if screen == "" {
			return nil, fmt.Errorf("%w: empty --toggle", ErrBadEdit)
		}

		commands = append(commands, store.ToggleScreenVisibility{Screen: screen})
	}

	for _, raw := range af.options {
		target, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --option %q needs =BOOL", ErrBadEdit, raw)
		}

		on, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: --option %q: %w", ErrBadEdit, raw, err)
		}

		scope, screen, option, err := parseOptionTarget(target)
		if err != nil {
			return nil, err
		}

		commands = append(commands, store.SetOptionValue{Scope: scope, Screen: screen, Option: option, Value: on})
	}

	for _, raw := range af.toggleOptions {
		scope, screen, option, err := parseOptionTarget(raw)
		if err != nil {
			return nil, err
		}

		commands = append(commands, store.ToggleOption{Scope: scope, Screen: screen, Option: option})
	}

	for _, raw := range af.sets {
		c, err := parseThemeSet(raw)
		if err != nil {
			return nil, err
		}

		commands = append(commands, c)
	}

	return commands, nil
}

// parseOptionTarget splits "screen:SCREEN:OPTION" or "global:OPTION".
func parseOptionTarget(s string) (schema.Scope, string, string, error) {
	scopeName, rest, ok := strings.Cut(s, ":")
	if !ok {
		return 0, "", "", fmt.Errorf("%w: option %q has no scope", ErrBadEdit, s)
	}

	scope, err := schema.ParseScope(scopeName)
	if err != nil {
		return 0, "", "", fmt.Errorf("%w: option %q: %w", ErrBadEdit, s, err)
	}

	if scope == schema.ScopeGlobal {
		if rest == "" || strings.Contains(rest, ":") {
			return 0, "", "", fmt.Errorf("%w: global option %q must be global:OPTION", ErrBadEdit, s)
		}

		return scope, "", rest, nil
	}

	screen, option, ok := strings.Cut(rest, ":")
	if !ok || screen == "" || option == "" {
		return 0, "", "", fmt.Errorf("%w: screen option %q must be screen:SCREEN:OPTION", ErrBadEdit, s)
	}

	return scope, screen, option, nil
}

// parseThemeSet reads "INDEX:PATH=VALUE". The value is raw field text and may be empty.
func parseThemeSet(s string) (store.SetThemeField, error) {
	index, rest, ok := strings.Cut(s, ":")
	if !ok {
		return store.SetThemeField{}, fmt.Errorf("%w: --set %q must be INDEX:PATH=VALUE", ErrBadEdit, s)
	}

	theme, err := strconv.Atoi(index)
	if err != nil {
		return store.SetThemeField{}, fmt.Errorf("%w: --set %q: theme index: %w", ErrBadEdit, s, err)
	}

	pathText, value, ok := strings.Cut(rest, "=")
	if !ok {
		return store.SetThemeField{}, fmt.Errorf("%w: --set %q must be INDEX:PATH=VALUE", ErrBadEdit, s)
	}

	path, err := document.ParsePath(pathText)
	if err != nil {
		return store.SetThemeField{}, err
	}

	return store.SetThemeField{Theme: theme, Path: path, Raw: value}, nil
}
