package importer

import (
	"testing"

	"github.com/maquinex/import-service/internal/types"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		nilOut   bool
	}{
		{"Yen with thousands", "¥8,169,400", 8169400, false},
		{"Yen with thousands and decimals", "¥384,500.00", 384500, false},
		{"Dollar with space and decimals", "$ 3,873.00", 3873, false},
		{"Euro glyph", "€12,500.50", 12500.50, false},
		{"Plain integer", "4200", 4200, false},
		{"Plain decimal", "151.20", 151.20, false},
		{"Negative", "-300", -300, false},
		{"Leading and trailing spaces", "  1,000  ", 1000, false},
		{"Interior whitespace", "1 000 000", 1000000, false},
		{"Empty string", "", 0, true},
		{"Only spaces", "   ", 0, true},
		{"Letters only", "N/A", 0, true},
		{"Lone glyph", "$", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumeric(tt.input)
			if tt.nilOut {
				if got != nil {
					t.Errorf("ParseNumeric(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseNumeric(%q) = nil, want %v", tt.input, tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("ParseNumeric(%q) = %v, want %v", tt.input, *got, tt.expected)
			}
		})
	}
}

// Parsing a value, formatting it, and parsing it again must be a fixed point:
// already-clean values survive a re-import byte for byte.
func TestParseNumericIdempotent(t *testing.T) {
	inputs := []string{"¥8,169,400", "$ 3,873.00", "151.20", "-42", "0.5"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := ParseNumeric(input)
			if first == nil {
				t.Fatalf("ParseNumeric(%q) = nil", input)
			}
			formatted := FormatNumeric(*first)
			second := ParseNumeric(formatted)
			if second == nil {
				t.Fatalf("ParseNumeric(%q) = nil on second pass", formatted)
			}
			if *second != *first {
				t.Errorf("round trip changed value: %v -> %q -> %v", *first, formatted, *second)
			}
		})
	}
}

func TestNormalizerApplyNumericFields(t *testing.T) {
	n := NewNormalizer()
	row := types.ParsedRow{}

	n.Apply(&row, types.FieldTRM, "4,350.50")
	n.Apply(&row, types.FieldYear, "2018")
	n.Apply(&row, types.FieldHours, "")
	n.Apply(&row, types.FieldOceanUSD, "no aplica")

	if row.TRM == nil || *row.TRM != 4350.50 {
		t.Errorf("TRM = %v, want 4350.50", row.TRM)
	}
	if row.Year == nil || *row.Year != 2018 {
		t.Errorf("Year = %v, want 2018", row.Year)
	}
	if row.Hours != nil {
		t.Errorf("Hours = %v, want nil for empty cell", *row.Hours)
	}
	if row.OceanUSD != nil {
		t.Errorf("OceanUSD = %v, want nil for non-numeric cell", *row.OceanUSD)
	}
}

func TestNormalizerApplyEXWValue(t *testing.T) {
	n := NewNormalizer()
	row := types.ParsedRow{}

	n.Apply(&row, types.FieldEXWValueFormatted, "¥8,169,400")
	if row.EXWValueFormatted == nil {
		t.Fatal("EXWValueFormatted = nil")
	}
	if *row.EXWValueFormatted != "8169400" {
		t.Errorf("EXWValueFormatted = %q, want %q", *row.EXWValueFormatted, "8169400")
	}

	// Non-numeric input leaves the field absent rather than storing garbage.
	empty := types.ParsedRow{}
	n.Apply(&empty, types.FieldEXWValueFormatted, "pendiente")
	if empty.EXWValueFormatted != nil {
		t.Errorf("EXWValueFormatted = %q, want nil", *empty.EXWValueFormatted)
	}
}

func TestNormalizerApplySpecTrimmed(t *testing.T) {
	n := NewNormalizer()

	row := types.ParsedRow{}
	n.Apply(&row, types.FieldSpec, "  PC200-8 STD  ")
	if row.Spec == nil || *row.Spec != "PC200-8 STD" {
		t.Errorf("Spec = %v, want trimmed value", row.Spec)
	}

	blank := types.ParsedRow{}
	n.Apply(&blank, types.FieldSpec, "   ")
	if blank.Spec != nil {
		t.Errorf("Spec = %q, want nil for whitespace-only cell", *blank.Spec)
	}
}

func TestNormalizerApplyExtraFields(t *testing.T) {
	n := NewNormalizer()
	row := types.ParsedRow{}

	n.Apply(&row, "invoice_number", "INV-2025-001")
	n.Apply(&row, "observaciones", "")

	if row.Extra["invoice_number"] != "INV-2025-001" {
		t.Errorf("Extra[invoice_number] = %q, want INV-2025-001", row.Extra["invoice_number"])
	}
	if _, ok := row.Extra["observaciones"]; ok {
		t.Error("empty cell should not create an Extra entry")
	}
}
