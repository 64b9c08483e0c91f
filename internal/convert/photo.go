// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/catalogo/internal/rules"
)

// DeriveColore returns the color shown for a product line.
func DeriveColore(linea string) string {
	return strings.TrimSpace(linea)
}

// DeriveFoto resolves the asset for an entry: a per-code override wins,
// then the first line keyword, then the default asset.
func DeriveFoto(codice, linea string, rs *rules.Rules) string {
	if foto, ok := rs.OverrideFor(codice); ok {
		return foto
	}
	return rs.LineAssetFor(linea)
}
