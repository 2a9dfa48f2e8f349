package tableread

import (
	"fmt"

	"github.com/gyeh/bolspread/internal/config"
)

// Bindings holds the header index of each role-bound column.
type Bindings struct {
	Identifier   int
	ShipmentType int
	BOLID        int
	ETA          int
	ATA          int
}

// Resolve maps every role to its column index in header. Names match
// exactly; with duplicate header names the first wins.
func Resolve(header []string, roles config.ColumnRoles) (Bindings, error) {
	if err := roles.Validate(); err != nil {
		return Bindings{}, err
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var b Bindings
	for _, bind := range []struct {
		role string
		col  string
		dst  *int
	}{
		{"identifier", roles.Identifier, &b.Identifier},
		{"shipment_type", roles.ShipmentType, &b.ShipmentType},
		{"bol_id", roles.BOLID, &b.BOLID},
		{"eta", roles.ETA, &b.ETA},
		{"ata", roles.ATA, &b.ATA},
	} {
		i, ok := index[bind.col]
		if !ok {
			return Bindings{}, fmt.Errorf("%w: %s column %q not found in header", ErrUnknownColumn, bind.role, bind.col)
		}
		*bind.dst = i
	}
	return b, nil
}
