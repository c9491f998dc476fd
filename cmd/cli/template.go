package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maquinex/import-service/internal/template"
)

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template [output-path]",
	Short: "Write the blank import template workbook",
	Long: `Generate the spreadsheet template users fill in before an import: the
fixed header row plus two example records, one per purchase type. The default
output path is ` + template.Filename + ` in the current directory.`,
	Example: `  import-service template
  import-service template ./plantillas/compras.xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	outPath := template.Filename
	if len(args) == 1 {
		outPath = args[0]
	}

	data, err := template.Bytes()
	if err != nil {
		return fmt.Errorf("failed to generate template: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	logger.Info().Str("path", outPath).Int("bytes", len(data)).Msg("Template written")
	return nil
}
