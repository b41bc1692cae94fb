package commands

import (
	"github.com/0xalexb/confedit/export"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRenderCmd(fs afero.Fs, flags *rootFlags) *cobra.Command {
	var kind, seed, mode string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load a document and print its export form",
		Long: `Load a seed document, check it against the document shape and print it
the way an unedited session would export it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exportMode, err := export.ParseMode(mode)
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(fs, kind, seed)
			if err != nil {
				return err
			}

			data, _, err := export.Document(snap, exportMode)
			if err != nil {
				return err
			}

			flags.logger(cmd).Debug("document rendered",
				"kind", string(snap.Kind()), "mode", string(exportMode), "size", len(data))

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Document kind (features|themes)")
	cmd.Flags().StringVarP(&seed, "seed", "s", "", "Seed file, the embedded default when empty")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(export.ModeRender), "Export mode (render|preserve)")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}
