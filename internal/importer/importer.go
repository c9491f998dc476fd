// Package importer implements the tabular import pipeline for equipment
// purchase records: header mapping, value normalization, row validation and
// preview aggregation.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/maquinex/import-service/internal/metrics"
	"github.com/maquinex/import-service/internal/parsers/csv"
	"github.com/maquinex/import-service/internal/parsers/xls"
	"github.com/maquinex/import-service/internal/parsers/xlsx"
	"github.com/maquinex/import-service/internal/types"
)

// acceptedExtensions is the set of file extensions admitted before any
// parsing begins. The extension is whatever follows the last dot, lowercased.
var acceptedExtensions = map[string]bool{
	"csv":  true,
	"xlsx": true,
	"xls":  true,
	"xlsm": true,
	"xlsb": true,
	"xltx": true,
	"xltm": true,
}

// Result is the outcome of importing one file. Either Rows is populated and
// ready to submit, or Errors is non-empty and Rows is empty: a file with any
// validation error is rejected wholesale, never partially accepted.
type Result struct {
	Rows       []types.ParsedRow   `json:"rows"`
	Errors     []string            `json:"errors"`
	Preview    []types.PreviewItem `json:"preview"`
	ErrorItems []types.ErrorItem   `json:"errorItems"`
	TotalRows  int                 `json:"totalRows"`
}

// Importer runs the full pipeline for one file at a time. It is safe for
// concurrent use; each ImportFile call owns its row and error slices
// exclusively.
type Importer struct {
	mapper     *ColumnMapper
	normalizer *Normalizer
	validator  *RowValidator
	tracer     trace.Tracer
}

// New creates an importer from rule-table and vocabulary configuration.
func New(rules []MappingRule, vocab Vocabulary) *Importer {
	return &Importer{
		mapper:     NewColumnMapper(rules),
		normalizer: NewNormalizer(),
		validator:  NewRowValidator(vocab),
		tracer:     otel.Tracer("importer"),
	}
}

// NewDefault creates an importer with the default rule table and vocabulary.
func NewDefault() *Importer {
	return New(DefaultMappingRules(), DefaultVocabulary())
}

// ImportFile decodes, maps, normalizes and validates one file. A returned
// error is a file-level rejection (bad extension, undecodable content, no
// data rows) and means no rows were produced; row-level problems come back
// inside Result.Errors instead.
func (imp *Importer) ImportFile(ctx context.Context, filename string, content []byte) (*Result, error) {
	ext := extensionOf(filename)
	if !acceptedExtensions[ext] {
		return nil, fmt.Errorf("formato de archivo no soportado: %q", ext)
	}

	_, span := imp.tracer.Start(ctx, "importer.ImportFile",
		trace.WithAttributes(
			attribute.String("file.name", filename),
			attribute.String("file.format", ext),
		))
	defer span.End()
	start := time.Now()

	headers, rawRows, err := decode(ext, content)
	if err != nil {
		metrics.FileProcessed(ext, "failed")
		return nil, err
	}

	// Resolve every header once; dropped columns keep an empty field name.
	fields := make([]string, len(headers))
	for i, h := range headers {
		if field, keep := imp.mapper.MapHeader(h); keep {
			fields[i] = field
		}
	}

	result := &Result{TotalRows: len(rawRows)}
	rows := make([]types.ParsedRow, 0, len(rawRows))
	for idx, raw := range rawRows {
		row := types.ParsedRow{}
		for col, field := range fields {
			if field == "" || col >= len(raw) {
				continue
			}
			imp.normalizer.Apply(&row, field, raw[col])
		}

		validated, errs := imp.validator.Validate(row, idx)
		result.Errors = append(result.Errors, errs...)
		rows = append(rows, validated)
	}

	metrics.RowsParsed(len(rawRows))
	metrics.ObserveParse(ext, time.Since(start).Seconds())

	if len(result.Errors) > 0 {
		// All-or-nothing: errors block the whole file from submission.
		result.ErrorItems = BuildErrorList(result.Errors)
		metrics.ValidationErrors(len(result.Errors))
		metrics.FileProcessed(ext, "rejected")
		log.Info().
			Str("file", filename).
			Int("rows", result.TotalRows).
			Int("errors", len(result.Errors)).
			Msg("Import rejected by validation")
		return result, nil
	}

	result.Rows = rows
	result.Preview = BuildPreview(rows)
	metrics.FileProcessed(ext, "ok")
	log.Info().
		Str("file", filename).
		Int("rows", len(rows)).
		Msg("Import parsed")
	return result, nil
}

func decode(ext string, content []byte) ([]string, [][]string, error) {
	switch ext {
	case "csv":
		return csv.Decode(content)
	case "xls":
		return xls.Decode(content)
	default:
		return xlsx.Decode(content)
	}
}

func extensionOf(filename string) string {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return ""
	}
	return strings.ToLower(filename[dot+1:])
}
