// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CartonPlaceholder is written into every entry's Cartone field. The source
// export carries no carton data.
const CartonPlaceholder = "Non specificato"

// Source column names read from the catalog export.
const (
	ColumnCode        = "Codice Articolo"
	ColumnLine        = "Linea"
	ColumnDescription = "Descrizione"
	ColumnDimensions  = "Dimensioni"
)

// CatalogEntry is one product in the generated catalog. Field order is the
// JSON key order of the output document.
type CatalogEntry struct {
	// Codice is the article code; never empty, used as the sort key.
	Codice string `json:"codice" yaml:"codice"`

	// Descrizione is the trimmed free-text description.
	Descrizione string `json:"descrizione" yaml:"descrizione"`

	// Variante is the short label derived from the description, nil when
	// nothing could be derived.
	Variante *string `json:"variante" yaml:"variante"`

	// Linea is the trimmed product line.
	Linea string `json:"linea" yaml:"linea"`

	// Colore mirrors Linea, nil when the line is empty.
	Colore *string `json:"colore" yaml:"colore"`

	// Formato is the normalized dimension string. Empty, not nil, when the
	// source has no dimensions.
	Formato string `json:"formato" yaml:"formato"`

	// Cartone is always CartonPlaceholder.
	Cartone string `json:"cartone" yaml:"cartone"`

	// Foto is the asset path shown for the product.
	Foto string `json:"foto" yaml:"foto"`
}
