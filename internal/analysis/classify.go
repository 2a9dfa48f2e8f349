package analysis

import (
	"github.com/gyeh/bolspread/internal/model"
	"github.com/gyeh/bolspread/internal/normalize"
)

var containerTypes = map[string]bool{
	"CONTAINER":    true,
	"CONTAINER_ID": true,
}

// IsContainer reports whether shipmentType, trimmed and uppercased, is
// exactly CONTAINER or CONTAINER_ID.
func IsContainer(shipmentType string) bool {
	return containerTypes[normalize.ShipmentType(shipmentType)]
}

// Containers keeps the container rows of rows, in input order, and parses
// their ETA and ATA with p.
func Containers(rows []model.InputRow, p normalize.TimestampParser) []model.ContainerRow {
	out := make([]model.ContainerRow, 0, len(rows))
	for _, r := range rows {
		if !IsContainer(r.ShipmentType) {
			continue
		}
		out = append(out, model.ContainerRow{
			InputRow: r,
			ETATime:  p.Parse(r.ETA),
			ATATime:  p.Parse(r.ATA),
		})
	}
	return out
}
