package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/climforge/forcingval/internal/database"
	"github.com/climforge/forcingval/internal/dataset"
	"github.com/climforge/forcingval/internal/upload"
)

var dbDir string

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Create and validate the file database",
	}
	cmd.PersistentFlags().StringVar(&dbDir, "db-dir", "", "Directory holding the database entries")
	cmd.AddCommand(newDBCreateCmd())
	cmd.AddCommand(newDBValidateCmd())
	return cmd
}

func newDBCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <tree-root>",
		Short: "Create a database from a tree of files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbDir == "" {
				return fmt.Errorf("--db-dir is required")
			}
			store, err := loadCVs()
			if err != nil {
				return err
			}
			files, err := upload.FindTreeFiles(args[0], treeFilePattern)
			if err != nil {
				return err
			}

			results := database.CreateEntries(
				cmd.Context(), dataset.JSONLoader{}, files, store,
				fileCheckOptions().FrequencyMetadataKeys, timeDimension, nWorkers)

			var entries []*database.Entry
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					cmd.PrintErrf("FAIL %s: %v\n", r.Path, r.Err)
					continue
				}
				entries = append(entries, r.Entry)
			}

			db, err := database.Create(dbDir)
			if err != nil {
				return err
			}
			if err := db.Save(entries); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("created %d entries, %d files failed", len(entries), failed)
			}
			cmd.Printf("created %d entries in %s\n", len(entries), dbDir)
			return nil
		},
	}
	addValidationFlags(cmd)
	cmd.Flags().StringVar(&treeFilePattern, "file-pattern", "*.nc", "Pattern selecting the files of interest in the tree")
	return cmd
}

func newDBValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the entries in an existing database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbDir == "" {
				return fmt.Errorf("--db-dir is required")
			}
			db, err := database.Open(dbDir)
			if err != nil {
				return err
			}
			entries, err := db.Load()
			if err != nil {
				return err
			}

			validated, err := database.ValidateEntries(cmd.Context(), entries, nWorkers)
			if err != nil {
				return err
			}
			if err := db.Save(validated); err != nil {
				return err
			}

			failed := 0
			for _, e := range validated {
				if e.ValidatedInput4MIPs != nil && !*e.ValidatedInput4MIPs {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d entries failed validation", failed, len(validated))
			}
			cmd.Printf("all %d entries passed validation\n", len(validated))
			return nil
		},
	}
}
