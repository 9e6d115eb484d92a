// Package cli implements the cdkgen command line.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool

	logger *zap.Logger
}

// Logger returns the logger built for the running command.
func (o *RootOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

// NewRootCommand creates the root command for cdkgen.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cdkgen",
		Short: "ABI generator for cdk-go contracts",
		Long: `cdkgen turns //cdk:export functions of a contract package into wasm
entry points and writes the contract's ABI manifest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.Logger().Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewDecodeNameCommand(opts))

	return cmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}
