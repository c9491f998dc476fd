package importer

import "strings"

// ColumnMapper resolves raw spreadsheet headers to canonical field names
// using an ordered include/exclude token table.
type ColumnMapper struct {
	rules []MappingRule
}

// NewColumnMapper creates a mapper over the given rule table. The table is
// copied so later mutation by the caller cannot reorder matching priority.
func NewColumnMapper(rules []MappingRule) *ColumnMapper {
	owned := make([]MappingRule, len(rules))
	copy(owned, rules)
	return &ColumnMapper{rules: owned}
}

// MapHeader maps one raw header to a canonical field name. The second return
// is false when the column must be dropped entirely (the server-computed FOB
// total column, which must never be re-imported). Headers no rule recognizes
// come back under their own normalized name so unknown columns survive.
func (m *ColumnMapper) MapHeader(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))

	if strings.Contains(h, "fob") && (strings.Contains(h, "suma") || strings.Contains(h, "total")) {
		return "", false
	}

	for _, rule := range m.rules {
		if !matchesAny(h, rule.IncludeAny) {
			continue
		}
		if matchesAny(h, rule.ExcludeAny) {
			continue
		}
		return rule.Field, true
	}

	return h, true
}

func matchesAny(header string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(header, t) {
			return true
		}
	}
	return false
}
