package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maquinex/import-service/internal/importer"
	"github.com/maquinex/import-service/internal/types"
)

var parseOutput string

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse and validate a purchase spreadsheet without submitting",
	Long: `Parse a local spreadsheet (CSV, XLS or XLSX), map its columns onto the
canonical purchase record schema and validate every row. Nothing is submitted;
the output shows the preview table or the validation error list, exactly what
the submit command would act on.`,
	Example: `  import-service parse ./data/compras_enero.xlsx
  import-service parse ./data/compras.csv --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseOutput, "output", "table", "Output format: table or json")
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := importFile(cmd, args[0])
	if err != nil {
		return err
	}

	switch strings.ToLower(parseOutput) {
	case "json":
		return outputJSON(result)
	case "table":
		outputParseTable(result)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", parseOutput)
	}

	return nil
}

// importFile runs the shared read-and-import step used by parse and submit.
func importFile(cmd *cobra.Command, filePath string) (*importer.Result, error) {
	logger.Info().Str("file", filePath).Msg("Reading file")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	logger.Info().Str("file", filePath).Msgf("Read %d bytes", len(content))

	result, err := importer.NewDefault().ImportFile(cmd.Context(), filePath, content)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return result, nil
}

func outputParseTable(result *importer.Result) {
	fmt.Println("\nParse Results")
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Metric\tValue\n")
	fmt.Fprintf(w, "------\t-----\n")
	fmt.Fprintf(w, "Total Rows\t%d\n", result.TotalRows)
	fmt.Fprintf(w, "Valid Rows\t%d\n", len(result.Rows))
	fmt.Fprintf(w, "Errors\t%d\n", len(result.Errors))
	w.Flush()

	if len(result.ErrorItems) > 0 {
		fmt.Println("\nValidation Errors:")
		fmt.Println(strings.Repeat("-", 60))
		for _, item := range result.ErrorItems {
			fmt.Println(item.Message)
		}
		return
	}

	if len(result.Preview) > 0 {
		fmt.Printf("\nPreview (first %d rows):\n", len(result.Preview))
		fmt.Println(strings.Repeat("-", 60))
		pw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(pw, "MQ\tModel\tSerial\tSupplier\tType\n")
		for _, item := range result.Preview {
			fmt.Fprintf(pw, "%s\t%s\t%s\t%s\t%s\n",
				item.Row.Get(types.FieldMQ),
				item.Row.Get(types.FieldModel),
				item.Row.Get(types.FieldSerial),
				item.Row.Get(types.FieldSupplierName),
				item.Row.Get(types.FieldTipo),
			)
		}
		pw.Flush()
	}
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
