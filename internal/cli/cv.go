package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/climforge/forcingval/internal/cvs"
	"github.com/climforge/forcingval/internal/drs"
)

// cvSummary is the printable form of a loaded CV store.
type cvSummary struct {
	Source         string                          `json:"source"`
	ActivityIDs    map[string]cvs.ActivityIDValues `json:"activity_ids"`
	InstitutionIDs []string                        `json:"institution_ids"`
	Licenses       map[string]cvs.LicenseValues    `json:"licenses"`
	SourceIDs      map[string]cvs.SourceIDValues   `json:"source_ids"`
	DRS            drs.DataReferenceSyntax         `json:"drs"`
}

func newCVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cv",
		Short: "Inspect the controlled vocabularies",
	}
	cmd.AddCommand(newCVShowCmd())
	cmd.AddCommand(newCVLintCmd())
	return cmd
}

func newCVShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Load the CVs and print their content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCVs()
			if err != nil {
				return err
			}
			summary := cvSummary{
				Source:         store.RawLoader.String(),
				ActivityIDs:    store.ActivityIDEntries.Unstructured(),
				InstitutionIDs: store.InstitutionIDs,
				Licenses:       store.LicenseEntries.Unstructured(),
				SourceIDs:      store.SourceIDEntries.Unstructured(),
				DRS:            store.DRS,
			}
			if jsonOutput {
				printJSON(summary)
				return nil
			}
			out, err := yaml.Marshal(summary)
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	}
}

func newCVLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Load the CVs and report schema or consistency problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cvs.LoadFromSource(cvSource)
			if err != nil {
				return err
			}
			if err := store.Validate(); err != nil {
				return fmt.Errorf("CVs from %s are not valid: %w", store.RawLoader.String(), err)
			}
			cmd.Printf("CVs from %s are valid\n", store.RawLoader.String())
			return nil
		},
	}
}
