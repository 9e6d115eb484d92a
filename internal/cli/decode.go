package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c123chain/cdk-go/manifest"
)

// NewDecodeNameCommand creates the decode-name command.
func NewDecodeNameCommand(rootOpts *RootOptions) *cobra.Command {
	var encode bool

	cmd := &cobra.Command{
		Use:   "decode-name <export>...",
		Short: "Recover function names from wasm export names",
		Example: `  cdkgen decode-name x736574
  cdkgen decode-name --encode set`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if encode {
					fmt.Fprintln(cmd.OutOrStdout(), manifest.ExportName(arg))
					continue
				}
				name, err := manifest.FunctionName(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&encode, "encode", "e", false, "encode function names instead")
	return cmd
}
