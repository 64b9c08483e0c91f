// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules holds the lookup tables that drive catalog normalization:
// per-code photo overrides, product-line photo keywords, and the variant
// prefix list. Tables are ordered and evaluated first-match-wins; a Rules
// value is built once at startup and never mutated afterwards.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Override assigns a fixed photo to a single article code.
type Override struct {
	Codice string `yaml:"codice"`
	Foto   string `yaml:"foto"`
}

// LineAsset maps a keyword found in the uppercased product line to a photo.
type LineAsset struct {
	Keyword string `yaml:"keyword"`
	Foto    string `yaml:"foto"`
}

// Prefix maps a normalized description prefix to a display label.
type Prefix struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

// Rules is the full rule set used by the converter.
type Rules struct {
	Overrides   []Override  `yaml:"overrides"`
	LineAssets  []LineAsset `yaml:"line_assets"`
	DefaultFoto string      `yaml:"default_foto"`
	Prefixes    []Prefix    `yaml:"variant_prefixes"`
	Connectors  []string    `yaml:"connectors"`

	overrideIdx  map[string]string
	connectorIdx map[string]bool
}

// Default returns the built-in rule set.
func Default() *Rules {
	r := &Rules{
		Overrides: []Override{
			{Codice: "101007S", Foto: "assets/prodotti/101007S.svg"},
		},
		LineAssets: []LineAsset{
			{Keyword: "FIBRA", Foto: "assets/linea_FIBRA.svg"},
			{Keyword: "SETA", Foto: "assets/linea_SETA.svg"},
			{Keyword: "SPOT", Foto: "assets/linea_SPOT.svg"},
			{Keyword: "CRYSTAL", Foto: "assets/linea_CRYSTAL.svg"},
		},
		DefaultFoto: "assets/default.svg",
		Prefixes:    defaultPrefixes(),
		Connectors:  []string{"+", "a", "al", "alla", "di", "da"},
	}
	r.index()
	return r
}

// defaultPrefixes lists longer prefixes ahead of the shorter ones they
// extend. Entries shadowed by an earlier prefix ("baulotto new") are kept so
// the table can be edited without changing precedence.
func defaultPrefixes() []Prefix {
	return []Prefix{
		{"portapanettone + bott.", "Portapanettone + Bott."},
		{"portapanettone portapanettone", "Portapanettone"},
		{"portapanettone+bott.", "Portapanettone + Bott."},
		{"portapanettone", "Portapanettone"},
		{"vassoio conico", "Vassoio Conico"},
		{"vassoio esagono", "Vassoio Esagono"},
		{"cesto incollato", "Cesto Incollato"},
		{"cantinetta sicura", "Cantinetta"},
		{"cantinetta cantina", "Cantinetta"},
		{"cantinetta", "Cantinetta"},
		{"quadrella", "Quadrella"},
		{"tutto a posto", "Tutto A Posto"},
		{"baulotto", "Baulotto"},
		{"casetta", "Casetta"},
		{"coperchio", "Coperchio"},
		{"automatico", "Automatico"},
		{"magnum", "Magnum"},
		{"segret", "Segreto"},
		{"unica", "Unica"},
		{"cubotto", "Cubotto"},
		{"prestige", "Prestige"},
		{"maison", "Maison"},
		{"cofanetto", "Cofanetto"},
		{"shopperbox", "Shopperbox"},
		{"cassetta smart", "Cassetta Smart"},
		{"cassetta marmotta", "Cassetta Marmotta"},
		{"cassetta", "Cassetta"},
		{"liquore", "Liquore"},
		{"gourmet", "Gourmet"},
		{"valigetta", "Valigetta"},
		{"finestra", "Finestra"},
		{"saccotto", "Saccotto"},
		{"scatola salmone", "Scatola Salmone"},
		{"manuale", "Manuale"},
		{"libreria", "Arredo"},
		{"targhetta", "Targhetta"},
		{"cuore da appendere", "Decorazione"},
		{"strip", "Strip"},
		{"prestige c/cordini", "Prestige"},
		{"video montaggio", "Video"},
		{"baulotto new", "Baulotto"},
	}
}

// Load reads a YAML rules file. Sections left empty in the file keep the
// built-in table.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML rules, filling empty sections from Default.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	def := Default()
	if len(r.Overrides) == 0 {
		r.Overrides = def.Overrides
	}
	if len(r.LineAssets) == 0 {
		r.LineAssets = def.LineAssets
	}
	for i := range r.LineAssets {
		r.LineAssets[i].Keyword = strings.ToUpper(r.LineAssets[i].Keyword)
	}
	if r.DefaultFoto == "" {
		r.DefaultFoto = def.DefaultFoto
	}
	if len(r.Prefixes) == 0 {
		r.Prefixes = def.Prefixes
	}
	for i := range r.Prefixes {
		r.Prefixes[i].Pattern = strings.ToLower(r.Prefixes[i].Pattern)
	}
	if len(r.Connectors) == 0 {
		r.Connectors = def.Connectors
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.index()
	return &r, nil
}

// Validate reports every table entry with an empty key or value.
func (r *Rules) Validate() error {
	var errs []error
	for i, o := range r.Overrides {
		if strings.TrimSpace(o.Codice) == "" || o.Foto == "" {
			errs = append(errs, fmt.Errorf("overrides[%d]: codice and foto are required", i))
		}
	}
	for i, la := range r.LineAssets {
		if la.Keyword == "" || la.Foto == "" {
			errs = append(errs, fmt.Errorf("line_assets[%d]: keyword and foto are required", i))
		}
	}
	for i, p := range r.Prefixes {
		if p.Pattern == "" || p.Label == "" {
			errs = append(errs, fmt.Errorf("variant_prefixes[%d]: pattern and label are required", i))
		}
	}
	if r.DefaultFoto == "" {
		errs = append(errs, errors.New("default_foto is required"))
	}
	return errors.Join(errs...)
}

func (r *Rules) index() {
	r.overrideIdx = make(map[string]string, len(r.Overrides))
	for _, o := range r.Overrides {
		if _, dup := r.overrideIdx[o.Codice]; !dup {
			r.overrideIdx[o.Codice] = o.Foto
		}
	}
	r.connectorIdx = make(map[string]bool, len(r.Connectors))
	for _, c := range r.Connectors {
		r.connectorIdx[strings.ToLower(c)] = true
	}
}

// OverrideFor returns the manual photo for codice, if any.
func (r *Rules) OverrideFor(codice string) (string, bool) {
	foto, ok := r.overrideIdx[codice]
	return foto, ok
}

// LineAssetFor returns the photo of the first keyword contained in the
// uppercased line, or DefaultFoto.
func (r *Rules) LineAssetFor(linea string) string {
	key := strings.ToUpper(linea)
	for _, la := range r.LineAssets {
		if strings.Contains(key, la.Keyword) {
			return la.Foto
		}
	}
	return r.DefaultFoto
}

// LabelFor returns the label of the first prefix that normalized starts with.
func (r *Rules) LabelFor(normalized string) (string, bool) {
	for _, p := range r.Prefixes {
		if strings.HasPrefix(normalized, p.Pattern) {
			return p.Label, true
		}
	}
	return "", false
}

// IsConnector reports whether token links the first and third word of a
// variant label ("Cesto di Natale").
func (r *Rules) IsConnector(token string) bool {
	return r.connectorIdx[strings.ToLower(token)]
}

// Encode renders the tables in the same YAML layout Load accepts.
func (r *Rules) Encode() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling rules: %w", err)
	}
	return data, nil
}
