package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/climforge/forcingval/internal/cvs"
	"github.com/climforge/forcingval/internal/dataset"
	"github.com/climforge/forcingval/internal/upload"
	"github.com/climforge/forcingval/internal/validation"
)

// validation knobs shared by the validate and db commands
var (
	frequencyMetadataKey string
	noTimeAxisFrequency  string
	timeDimension        string
	treeFilePattern      string
)

func addValidationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&frequencyMetadataKey, "frequency-metadata-key", "frequency", "Attribute that carries frequency metadata")
	cmd.Flags().StringVar(&noTimeAxisFrequency, "no-time-axis-frequency", "fx", "Frequency value that means there is no time axis")
	cmd.Flags().StringVar(&timeDimension, "time-dimension", "time", "Name of the time dimension")
}

func loadCVs() (*cvs.CVs, error) {
	store, err := cvs.LoadFromSource(cvSource)
	if err != nil {
		return nil, err
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	return store, nil
}

func fileCheckOptions() validation.FileCheckOptions {
	opts := validation.DefaultFileCheckOptions()
	opts.FrequencyMetadataKeys.FrequencyMetadataKey = frequencyMetadataKey
	opts.FrequencyMetadataKeys.NoTimeAxisFrequency = noTimeAxisFrequency
	opts.TimeDimension = timeDimension
	return opts
}

// checkReport is the serialisable form of one file's validation result.
type checkReport struct {
	File    string        `json:"file"`
	Checks  []checkResult `json:"checks"`
	Failed  int           `json:"failed"`
	Passed  int           `json:"passed"`
	IsValid bool          `json:"is_valid"`
}

type checkResult struct {
	Description string `json:"description"`
	Error       string `json:"error,omitempty"`
}

func buildReport(file string, vrs *validation.ValidationResultsStore) checkReport {
	report := checkReport{File: file}
	for _, r := range vrs.Results() {
		cr := checkResult{Description: r.Description}
		if r.Passed() {
			report.Passed++
		} else {
			cr.Error = r.Err.Error()
			report.Failed++
		}
		report.Checks = append(report.Checks, cr)
	}
	report.IsValid = report.Failed == 0
	return report
}

func printReport(cmd *cobra.Command, report checkReport) {
	if jsonOutput {
		printJSON(report)
		return
	}
	cmd.Printf("%s: %d checks, %d failed\n", report.File, len(report.Checks), report.Failed)
	for _, c := range report.Checks {
		if c.Error == "" {
			cmd.Printf("  ok   %s\n", c.Description)
		} else {
			cmd.Printf("  FAIL %s: %s\n", c.Description, c.Error)
		}
	}
}

func newValidateFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-file <file>",
		Short: "Validate a single file against the CVs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCVs()
			if err != nil {
				return err
			}
			ds, err := dataset.JSONLoader{}.LoadDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			vrs := validation.DatasetValidationResult(ds, store, fileCheckOptions())
			printReport(cmd, buildReport(args[0], vrs))
			return vrs.RaiseIfErrors()
		},
	}
	addValidationFlags(cmd)
	return cmd
}

func newValidateTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-tree <tree-root>",
		Short: "Validate every file in a tree against the CVs and the DRS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCVs()
			if err != nil {
				return err
			}
			files, err := upload.FindTreeFiles(args[0], treeFilePattern)
			if err != nil {
				return err
			}

			// One bad file must not abort the batch; failures are
			// collected per file and reported together.
			loader := dataset.JSONLoader{}
			invalid := 0
			for _, file := range files {
				ds, err := loader.LoadDataset(cmd.Context(), file)
				if err != nil {
					invalid++
					printReport(cmd, checkReport{
						File:   file,
						Checks: []checkResult{{Description: "Load the dataset", Error: err.Error()}},
						Failed: 1,
					})
					continue
				}
				vrs := validation.TreeValidationResult(ds, file, store, fileCheckOptions())
				report := buildReport(file, vrs)
				printReport(cmd, report)
				if !report.IsValid {
					invalid++
				}
			}

			if invalid > 0 {
				return validation.ErrValidation.Msg(
					fmt.Sprintf("%d of %d files failed validation", invalid, len(files)))
			}
			cmd.Printf("all %d files passed validation\n", len(files))
			return nil
		},
	}
	addValidationFlags(cmd)
	cmd.Flags().StringVar(&treeFilePattern, "file-pattern", "*.nc", "Pattern selecting the files of interest in the tree")
	return cmd
}
