package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/manifest"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the ABI manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := manifest.Schema()
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			rootOpts.Logger().Debug("writing schema", zap.String("file", output))
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the schema to a file instead of stdout")
	return cmd
}
