package importer

import (
	"fmt"
	"strings"

	"github.com/maquinex/import-service/internal/types"
)

// RowValidator applies the business whitelists to a mapped-and-normalized
// row. Validation never fails hard: it returns a canonicalized copy of the
// row together with any error messages, and a row can accumulate several.
type RowValidator struct {
	suppliers   map[string]bool
	currencySyn map[string]string
	currencies  map[string]bool
	purchaseSyn map[string]string
	purchaseSet map[string]bool
	incoterms   map[string]bool
}

// NewRowValidator builds a validator from vocabulary configuration. The
// vocabulary is folded into lookup sets once, at construction.
func NewRowValidator(vocab Vocabulary) *RowValidator {
	v := &RowValidator{
		suppliers:   make(map[string]bool, len(vocab.Suppliers)),
		currencySyn: make(map[string]string, len(vocab.CurrencySynonyms)),
		currencies:  make(map[string]bool, len(vocab.Currencies)),
		purchaseSyn: make(map[string]string, len(vocab.PurchaseTypeSynonyms)),
		purchaseSet: make(map[string]bool, len(vocab.PurchaseTypes)),
		incoterms:   make(map[string]bool, len(vocab.Incoterms)),
	}
	for _, s := range vocab.Suppliers {
		v.suppliers[fold(s)] = true
	}
	for raw, canon := range vocab.CurrencySynonyms {
		v.currencySyn[fold(raw)] = canon
	}
	for _, c := range vocab.Currencies {
		v.currencies[fold(c)] = true
	}
	for raw, canon := range vocab.PurchaseTypeSynonyms {
		v.purchaseSyn[fold(raw)] = canon
	}
	for _, p := range vocab.PurchaseTypes {
		v.purchaseSet[fold(p)] = true
	}
	for _, i := range vocab.Incoterms {
		v.incoterms[fold(i)] = true
	}
	return v
}

func fold(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate checks one row against the business rules. rowIndex is the
// 0-based position within the data rows; user-facing messages reference the
// 1-based spreadsheet row, header included, hence the +2 offset.
//
// The returned row is the canonical form: currency_type, tipo and incoterm
// are rewritten to their canonical tokens, and purchase_type mirrors tipo so
// downstream consumers never see raw input. The input row is not mutated.
func (v *RowValidator) Validate(row types.ParsedRow, rowIndex int) (types.ParsedRow, []string) {
	var errs []string
	fail := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		errs = append(errs, fmt.Sprintf("Fila %d: %s", rowIndex+2, msg))
	}

	// Identity: positionally keyed rows still need something to name them by.
	if row.Model == nil && row.Serial == nil {
		fail("se requiere al menos modelo o serial")
	}

	if row.SupplierName != nil {
		if !v.suppliers[fold(*row.SupplierName)] {
			fail("proveedor no reconocido: %q", *row.SupplierName)
		}
	}

	if row.CurrencyType != nil {
		folded := fold(*row.CurrencyType)
		if canon, ok := v.currencySyn[folded]; ok {
			folded = canon
		}
		if v.currencies[folded] {
			row.CurrencyType = &folded
		} else {
			fail("moneda no válida: %q", *row.CurrencyType)
		}
	}

	// Purchase type is the one mandatory field: absence is itself an error.
	rawTipo := ""
	if row.Tipo != nil {
		rawTipo = *row.Tipo
	} else if row.PurchaseType != nil {
		rawTipo = *row.PurchaseType
	}
	if folded := fold(rawTipo); folded != "" {
		if canon, ok := v.purchaseSyn[folded]; ok {
			folded = canon
		}
		if v.purchaseSet[folded] {
			row.Tipo = &folded
			row.PurchaseType = types.StringPtr(folded)
		} else {
			fail("tipo de compra no válido: %q", rawTipo)
		}
	} else {
		fail("el tipo de compra es obligatorio (COMPRA_DIRECTA o SUBASTA)")
	}

	if row.Incoterm != nil {
		folded := fold(*row.Incoterm)
		if v.incoterms[folded] {
			row.Incoterm = &folded
		} else {
			fail("incoterm no válido: %q (se permite EXY, FOB, CIF)", *row.Incoterm)
		}
	}

	return row, errs
}
