package normalize

import "strings"

// ShipmentType trims whitespace and uppercases a shipment type cell.
func ShipmentType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsBlank reports whether a cell is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
