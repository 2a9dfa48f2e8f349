package model

import "time"

// InputRow holds the five role-mapped fields of one source table row.
// All values are raw cell text; missing cells are "".
type InputRow struct {
	Identifier   string
	ShipmentType string
	BOLID        string
	ETA          string
	ATA          string
}

// ContainerRow is an InputRow that passed the container filter, together
// with its parsed ETA/ATA. A nil timestamp means empty or unparsable.
type ContainerRow struct {
	InputRow
	ETATime *time.Time
	ATATime *time.Time
}

// DetailColumns returns the ordered header of bol_mixed_ata_presence_detail.
func DetailColumns() []string {
	return []string{"bol_id", "identifier", "shipment_type", "eta", "ata"}
}

// DetailValues returns the row's raw text in DetailColumns order.
func (r *ContainerRow) DetailValues() []string {
	return []string{r.BOLID, r.Identifier, r.ShipmentType, r.ETA, r.ATA}
}
