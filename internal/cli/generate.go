package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/abigen"
)

type generateFlags struct {
	goOutput   string
	wasmOutput string
	manifest   string
	format     string
	check      bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &generateFlags{}
	defaults := abigen.DefaultConfig("")

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate dispatchers, wasm exports and the ABI manifest",
		Long: `Generate reads the Go files of a contract package, validates every
//cdk:export function and writes the dispatcher file, the wasip1 export file
and the manifest. Settings come from cdkgen.yaml in the package directory
when present; flags override them. Nothing is written on error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runGenerate(cmd, rootOpts.Logger(), dir, flags)
		},
	}

	cmd.Flags().StringVar(&flags.goOutput, "go-output", defaults.GoOutput, "dispatcher file name")
	cmd.Flags().StringVar(&flags.wasmOutput, "wasm-output", defaults.WasmOutput, "wasip1 export file name")
	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", defaults.Manifest, "manifest file name")
	cmd.Flags().StringVar(&flags.format, "format", defaults.Format, "manifest format (json|yaml)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "fail if generated files are out of date instead of writing them")

	return cmd
}

func runGenerate(cmd *cobra.Command, logger *zap.Logger, dir string, flags *generateFlags) error {
	cfg, err := abigen.LoadConfig(dir)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("go-output") {
		cfg.GoOutput = flags.goOutput
	}
	if fs.Changed("wasm-output") {
		cfg.WasmOutput = flags.wasmOutput
	}
	if fs.Changed("manifest") {
		cfg.Manifest = flags.manifest
	}
	if fs.Changed("format") {
		cfg.Format = flags.format
	}
	if fs.Changed("check") {
		cfg.Check = flags.check
	}

	logger.Debug("generating", zap.String("dir", cfg.Dir), zap.String("format", cfg.Format), zap.Bool("check", cfg.Check))

	res, err := abigen.Run(cfg)
	if err != nil {
		return err
	}

	for _, f := range res.Package.Functions {
		logger.Debug("export", zap.String("function", f.Name), zap.String("export", f.ExportName()), zap.Int("params", len(f.Params)))
	}
	for _, path := range res.Files {
		if cfg.Check {
			logger.Debug("up to date", zap.String("file", path))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}
	logger.Info("generated ABI", zap.String("package", res.Package.Name), zap.Int("exports", len(res.Package.Functions)))
	return nil
}
