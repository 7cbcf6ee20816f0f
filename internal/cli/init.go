package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/eav/internal/sqlite"
)

func (a *app) newInitCmd() *cobra.Command {
	var withExamples bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the reference catalog",
		Long: "Create the configuration and catalog data directories, then attach the\n" +
			"catalog once to verify it. --with-examples seeds a small people and\n" +
			"organisations model when the catalog holds no reference data yet.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, withExamples)
		},
	}
	cmd.Flags().BoolVar(&withExamples, "with-examples", false, "seed example reference data")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, withExamples bool) error {
	if withExamples {
		has, err := sqlite.HasReferenceData(a.dataDir)
		if err != nil {
			return err
		}
		if has {
			a.logger.Warn("reference data present, examples not written", zap.String("data_dir", a.dataDir))
		} else {
			if err := sqlite.WriteReferenceData(a.dataDir, sqlite.ExampleReferenceData()); err != nil {
				return errors.Wrap(err, "write example reference data")
			}
			a.logger.Info("example reference data written", zap.String("data_dir", a.dataDir))
		}
	}

	catalog := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := catalog.Attach(a.catalogConfig()); err != nil {
		return errors.Wrap(err, "initialize catalog")
	}
	if err := catalog.Detach(); err != nil {
		return errors.Wrap(err, "finalize catalog")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Catalog initialized at %s\n", a.dataDir)
	return nil
}
