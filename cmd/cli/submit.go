package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maquinex/import-service/internal/submit"
)

var submitOutput string

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Parse, validate and submit a purchase spreadsheet",
	Long: `Parse and validate a local spreadsheet, then post the full row set to the
purchases bulk-upload API in a single batch. A file with any validation error
is rejected before anything is sent. Duplicates are detected and skipped on
the server side; the summary printed here relays the server's counts.`,
	Example: `  import-service submit ./data/compras_enero.xlsx
  import-service submit ./data/compras.csv --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitOutput, "output", "table", "Output format: table or json")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	result, err := importFile(cmd, args[0])
	if err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		fmt.Println("\nValidation Errors:")
		fmt.Println(strings.Repeat("-", 60))
		for _, item := range result.ErrorItems {
			fmt.Println(item.Message)
		}
		return fmt.Errorf("el archivo contiene %d error(es) de validación y no fue enviado", len(result.Errors))
	}

	submitter := submit.NewSubmitter(cfg.Upstream.BaseURL, cfg.Upstream.APIKey)
	upload, err := submitter.Submit(cmd.Context(), result.Rows)
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	if strings.ToLower(submitOutput) == "json" {
		return outputJSON(upload)
	}

	fmt.Println("\nUpload Summary")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Records sent:  %d\n", len(result.Rows))
	fmt.Printf("Inserted:      %d\n", upload.Inserted)
	fmt.Printf("Duplicates:    %d\n", upload.Duplicates)
	if len(upload.Errors) > 0 {
		fmt.Printf("Server errors: %d\n", len(upload.Errors))
		for _, msg := range upload.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", msg)
		}
	}

	if upload.HasObservations() {
		logger.Warn().
			Int("duplicates", upload.Duplicates).
			Int("serverErrors", len(upload.Errors)).
			Msg("Upload completed with observations")
	} else {
		logger.Info().Int("inserted", upload.Inserted).Msg("Upload completed")
	}

	return nil
}
