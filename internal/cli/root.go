// Package cli implements the eav command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/eav/internal/logging"
	"github.com/mesh-intelligence/eav/internal/paths"
	"github.com/mesh-intelligence/eav/pkg/eav"
	"github.com/mesh-intelligence/eav/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logFormat string
}

// app is the state shared by the commands of one root command.
type app struct {
	flags rootFlags

	configDir string
	dataDir   string
	config    fileConfig
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "eav" command with global flags and all
// subcommands registered. Each call returns independent state.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Nop()}

	root := &cobra.Command{
		Use:   "eav",
		Short: "Assemble typed entity-attribute-value objects",
		Long: "eav resolves categories, attributes, and relation configurations from a\n" +
			"reference catalog and assembles objects from YAML manifests.",
		Version:           eav.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/eav)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "catalog data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logFormat, "log-format", "", "log format: console or json (default from config.yaml)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrapf(types.ErrInvalidArgument, "%v", err)
	})

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newCatalogCmd())
	root.AddCommand(a.newApplyCmd())

	return root
}

// setup resolves directories, loads config.yaml, and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return errors.Wrap(err, "resolve config dir")
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	format := cfg.LogFormat
	if a.flags.logFormat != "" {
		format = a.flags.logFormat
	}
	logger, err := logging.New(format, cfg.LogLevel, logging.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return errors.Wrapf(types.ErrInvalidArgument, "logging: %v", err)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "resolve data dir")
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.config = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("backend", cfg.Backend))
	return nil
}

// catalogConfig returns the Config used to attach the catalog.
func (a *app) catalogConfig() types.Config {
	return types.Config{Backend: a.config.Backend, DataDir: a.dataDir}
}

// exactArgs is cobra.ExactArgs with a user-error classification.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.Wrapf(types.ErrInvalidArgument, "%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// userErrors are the error kinds caused by bad input rather than the system.
var userErrors = []error{
	types.ErrInvalidArgument,
	types.ErrConstraintViolation,
	types.ErrIllegalState,
	types.ErrNotFound,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
}

// exitCode classifies err into a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// Run executes the root command with args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// Execute runs the CLI with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
