package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/climforge/forcingval/internal/common/apperrors"
	"github.com/climforge/forcingval/internal/config"
	"github.com/climforge/forcingval/internal/logging"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	cvSource   string
	logLevel   string
	nWorkers   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "forcingval",
	Short: "forcingval validates input4MIPs files and manages their file database",
	Long: `forcingval validates netCDF climate-forcing files against the input4MIPs
controlled vocabularies and the data reference syntax (DRS), and maintains
the flat-file database of validated files.`,
	PersistentPreRun: preRunHandlePersistents,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override defaults")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&cvSource, "cv-source", "", "", `CV source: a local directory, a base URL, or "gh:<ref>"`)
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVarP(&nWorkers, "n-workers", "", 0, "Number of parallel workers for batch operations")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newValidateFileCmd())
	rootCmd.AddCommand(newValidateTreeCmd())
	rootCmd.AddCommand(newDBCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newCVCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code. Errors can carry
// their own code; everything else is a plain failure.
func exitCode(err error) int {
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		if code := appErr.ExitCode(); code != 0 {
			return code
		}
	}
	return 1
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	if configFile != "" {
		if err := config.LoadConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to load config file: %s\n", err.Error())
			os.Exit(1)
		}
	}
	cfg := config.Config()

	// Flags override the config file; the config file overrides the
	// built-in defaults. Nothing reads ambient state deeper down.
	if cvSource == "" {
		cvSource = cfg.CVSource
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	if nWorkers <= 0 {
		nWorkers = cfg.NWorkers
	}

	logging.Init(logLevel, cfg.LogConsole)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of forcingval",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(map[string]string{"version": "v0.4.0"})
			} else {
				cmd.Println("forcingval v0.4.0")
			}
		},
	}
}

// printJSON prints the given value as JSON to stdout
func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}
