package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/maquinex/import-service/internal/types"
)

const (
	// previewLimit caps the rows shown for review; the full set is still
	// submitted.
	previewLimit = 10
	// errorLimit caps the rendered validation messages; the remainder is
	// summarized.
	errorLimit = 10
)

// previewKeyFields is the composite used for display keys. It includes
// invoice_number and purchase_order, which only exist as pass-through
// columns; the composite is a render identity, not deduplication.
var previewKeyFields = []string{
	types.FieldMQ,
	types.FieldSerial,
	types.FieldModel,
	types.FieldBrand,
	types.FieldSupplierName,
	"invoice_number",
	"purchase_order",
	types.FieldTipo,
	types.FieldPurchaseType,
}

// BuildPreview renders at most the first previewLimit rows with keys that
// are guaranteed unique: identical composites get a running occurrence
// counter appended. Row content is never altered.
func BuildPreview(rows []types.ParsedRow) []types.PreviewItem {
	n := len(rows)
	if n > previewLimit {
		n = previewLimit
	}

	items := make([]types.PreviewItem, 0, n)
	seen := make(map[string]int, n)
	for _, row := range rows[:n] {
		base := compositeKey(&row)
		occ := seen[base]
		seen[base] = occ + 1
		items = append(items, types.PreviewItem{
			Key: fmt.Sprintf("%s#%d", base, occ),
			Row: row,
		})
	}
	return items
}

// BuildErrorList renders at most the first errorLimit messages, each with a
// unique display key, plus a trailing count of anything left over.
func BuildErrorList(messages []string) []types.ErrorItem {
	n := len(messages)
	shown := n
	if shown > errorLimit {
		shown = errorLimit
	}

	items := make([]types.ErrorItem, 0, shown+1)
	seen := make(map[string]int, shown)
	for _, msg := range messages[:shown] {
		occ := seen[msg]
		seen[msg] = occ + 1
		items = append(items, types.ErrorItem{
			Key:     fmt.Sprintf("%s#%d", msg, occ),
			Message: msg,
		})
	}

	if rest := n - shown; rest > 0 {
		items = append(items, types.ErrorItem{
			Key:     "resto",
			Message: fmt.Sprintf("... y %d error(es) más", rest),
		})
	}
	return items
}

func compositeKey(row *types.ParsedRow) string {
	parts := make([]string, len(previewKeyFields))
	empty := true
	for i, f := range previewKeyFields {
		parts[i] = row.Get(f)
		if parts[i] != "" {
			empty = false
		}
	}
	if empty {
		// Nothing identifying; fall back to the full serialized row.
		if data, err := json.Marshal(row); err == nil {
			return string(data)
		}
	}
	return strings.Join(parts, "|")
}
