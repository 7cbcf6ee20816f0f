package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/eav/internal/manifest"
)

func (a *app) newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <manifest.yaml>",
		Short: "Assemble the objects described by a manifest",
		Long: "Resolve every category, attribute, and relation configuration named by the\n" +
			"manifest against the catalog, assemble the objects, and print them.\n" +
			"Nothing is stored.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			catalog, err := a.attachCatalog()
			if err != nil {
				return err
			}
			defer catalog.Detach()

			objects, err := manifest.Apply(catalog, m)
			if err != nil {
				a.logger.Info("manifest rejected", zap.String("manifest", args[0]), zap.Error(err))
				return err
			}
			a.logger.Debug("manifest applied",
				zap.String("manifest", args[0]),
				zap.Int("objects", len(objects)),
				zap.Int("updates", len(m.Updates)))

			return writeObjects(cmd.OutOrStdout(), objects, a.flags.jsonMode)
		},
	}
}
