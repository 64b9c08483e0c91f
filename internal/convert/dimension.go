// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

const (
	dimensionSeparator = "×"
	dimensionUnit      = "mm"
)

// FormatDimension normalizes a raw size such as "40x40" to "40×40 mm".
// Values already ending in mm (any case) get no second unit. Empty input
// stays empty.
func FormatDimension(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "x", dimensionSeparator)
	if strings.HasSuffix(strings.ToLower(value), dimensionUnit) {
		return value
	}
	return value + " " + dimensionUnit
}
