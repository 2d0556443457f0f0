package models

import "time"

// Contract is a lease binding a resident to a unit for a date range.
// ResidentID and UnitID reference other tables by id; nothing is
// denormalized. PaymentDay is the day of month rent falls due (1–28 so it
// exists in every month).
type Contract struct {
	Meta
	ResidentID     string    `json:"residentId"`
	UnitID         string    `json:"unitId"`
	ContractNumber string    `json:"contractNumber"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	MonthlyRent    float64   `json:"monthlyRent"`
	Deposit        float64   `json:"deposit"`
	PaymentDay     int       `json:"paymentDay"`
}

func (c *Contract) Field(name string) (any, bool) {
	switch name {
	case "residentId":
		return c.ResidentID, true
	case "unitId":
		return c.UnitID, true
	case "contractNumber":
		return c.ContractNumber, true
	case "startDate":
		return c.StartDate, true
	case "endDate":
		return c.EndDate, true
	case "monthlyRent":
		return c.MonthlyRent, true
	case "deposit":
		return c.Deposit, true
	case "paymentDay":
		return c.PaymentDay, true
	}
	return c.metaField(name)
}

// Overlaps reports whether two date ranges share at least one day.
func (c *Contract) Overlaps(start, end time.Time) bool {
	return !c.EndDate.Before(start) && !c.StartDate.After(end)
}
