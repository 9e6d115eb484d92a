package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/c123chain/cdk-go/manifest"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check an ABI manifest against the schema and the naming rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts.Logger(), args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, logger *zap.Logger, path string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// YAML manifests are checked in their JSON form.
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		if doc, err = manifest.JSON(m); err != nil {
			return err
		}
	}

	if err := manifest.ValidateDocument(doc); err != nil {
		return err
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	logger.Debug("manifest valid", zap.String("file", path), zap.Int("entries", len(m.Entries)))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d entries)\n", path, len(m.Entries))
	return nil
}
