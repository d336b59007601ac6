package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/climforge/forcingval/internal/upload"
)

func newUploadCmd() *cobra.Command {
	var stagingDir string
	var filePattern string

	cmd := &cobra.Command{
		Use:   "upload <tree-root>",
		Short: "Upload a tree of files to a staging area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stagingDir == "" {
				return fmt.Errorf("--staging-dir is required")
			}
			uploader := &upload.LocalStagingUploader{Dir: stagingDir}
			return upload.UploadTree(cmd.Context(), uploader, args[0], filePattern, nWorkers)
		},
	}
	cmd.Flags().StringVar(&stagingDir, "staging-dir", "", "Directory to stage the tree into")
	cmd.Flags().StringVar(&filePattern, "file-pattern", "*.nc", "Pattern selecting the files of interest in the tree")
	return cmd
}
