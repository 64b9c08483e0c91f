// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/catalogo/internal/rules"
)

// SimplifyTokens splits a description into words, trims surrounding periods
// and commas, and drops a word that repeats the previous kept word
// ("Portapanettone Portapanettone Rosso" gives [Portapanettone Rosso]).
// Non-adjacent repeats are kept.
func SimplifyTokens(descrizione string) []string {
	var tokens []string
	prev := ""
	for _, raw := range strings.Fields(descrizione) {
		cleaned := strings.Trim(raw, ".,")
		if cleaned == "" {
			continue
		}
		if prev != "" && strings.EqualFold(cleaned, prev) {
			continue
		}
		tokens = append(tokens, cleaned)
		prev = cleaned
	}
	return tokens
}

// DeriveVariante returns the short variant label for a description, or ""
// when none can be derived.
//
// A known prefix of the lowercased, simplified description maps straight to
// its label. Otherwise the label is the first two words, or the first three
// when the second is a connector ("Cesto di Natale"). A leading "+" is
// dropped first.
func DeriveVariante(descrizione string, rs *rules.Rules) string {
	if descrizione == "" {
		return ""
	}

	tokens := SimplifyTokens(descrizione)
	normalized := strings.ToLower(strings.Join(tokens, " "))
	if label, ok := rs.LabelFor(normalized); ok {
		return label
	}

	if len(tokens) == 0 {
		return ""
	}
	if tokens[0] == "+" && len(tokens) > 1 {
		tokens = tokens[1:]
	}
	if len(tokens) >= 3 && rs.IsConnector(tokens[1]) {
		return strings.Join(tokens[:3], " ")
	}
	if len(tokens) > 1 {
		return strings.Join(tokens[:2], " ")
	}
	return tokens[0]
}
