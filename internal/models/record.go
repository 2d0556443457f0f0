// Package models defines the typed entities stored by the record store:
// units, residents, contracts, payments and maintenance requests, plus the
// settings singleton and the queued-operation envelope used by the sync
// layer.
//
// Every entity embeds Meta and satisfies Record. The Field accessor is the
// only dynamic surface; it exists so the generic query utilities can filter
// and sort without reflection, while everything else stays typed.
package models

import "time"

// Meta carries the invariant record fields shared by every table.
// ID is assigned once at creation and never reused; UpdatedAt is stamped on
// every successful mutation.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) RecordID() string { return m.ID }

func (m *Meta) RecordMeta() *Meta { return m }

// metaField resolves the shared fields so entity Field methods only have to
// handle their own columns.
func (m *Meta) metaField(name string) (any, bool) {
	switch name {
	case "id":
		return m.ID, true
	case "createdAt":
		return m.CreatedAt, true
	case "updatedAt":
		return m.UpdatedAt, true
	}
	return nil, false
}

// Record is implemented by every stored entity. Field returns the value of a
// named field, or false when the entity has no such field; it is consumed
// only by the query package.
type Record interface {
	RecordID() string
	RecordMeta() *Meta
	Field(name string) (any, bool)
}

// Logical table names. Tables are independent; cross-table references are
// resolved by id lookup at read time.
const (
	TableUnits       = "units"
	TableResidents   = "residents"
	TableContracts   = "contracts"
	TablePayments    = "payments"
	TableMaintenance = "maintenance"
)

// TableNames lists every logical table, in the order snapshots serialize
// them.
func TableNames() []string {
	return []string{TableUnits, TableResidents, TableContracts, TablePayments, TableMaintenance}
}
