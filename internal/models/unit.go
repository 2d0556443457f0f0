package models

// UnitStatus is the occupancy state of a unit.
type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusOccupied, UnitStatusMaintenance:
		return true
	}
	return false
}

// Unit is one apartment or commercial unit in the building. UnitNumber is
// unique within the table.
type Unit struct {
	Meta
	UnitNumber string     `json:"unitNumber"`
	Type       string     `json:"type"`
	Area       float64    `json:"area"`
	Floor      int        `json:"floor"`
	Rent       float64    `json:"rent"`
	Status     UnitStatus `json:"status"`
}

func (u *Unit) Field(name string) (any, bool) {
	switch name {
	case "unitNumber":
		return u.UnitNumber, true
	case "type":
		return u.Type, true
	case "area":
		return u.Area, true
	case "floor":
		return u.Floor, true
	case "rent":
		return u.Rent, true
	case "status":
		return string(u.Status), true
	}
	return u.metaField(name)
}
