// Package reports computes derived state from store contents: contract
// classification, resident balances and payment aggregations. Everything is
// a pure function; nothing here is persisted.
package reports

import (
	"time"

	"github.com/sakanapp/sakan/internal/models"
)

// ContractState classifies a contract relative to now. Exactly one state
// applies: upcoming before the start date, expired after the end date,
// expiring when active with no more than warnWindow left, active otherwise.
type ContractState string

const (
	ContractUpcoming ContractState = "upcoming"
	ContractActive   ContractState = "active"
	ContractExpiring ContractState = "expiring"
	ContractExpired  ContractState = "expired"
)

// DefaultWarnWindow is the expiry warning window applied when settings do
// not override it.
const DefaultWarnWindow = 30 * 24 * time.Hour

// ClassifyContract returns the contract's state at the given instant.
// Expiring takes precedence over plain active.
func ClassifyContract(c *models.Contract, now time.Time, warnWindow time.Duration) ContractState {
	switch {
	case now.Before(c.StartDate):
		return ContractUpcoming
	case now.After(c.EndDate):
		return ContractExpired
	case c.EndDate.Sub(now) <= warnWindow:
		return ContractExpiring
	}
	return ContractActive
}

// IsContractActive reports whether the contract covers the given instant,
// counting the expiring window as active.
func IsContractActive(c *models.Contract, now time.Time) bool {
	state := ClassifyContract(c, now, 0)
	return state == ContractActive || state == ContractExpiring
}

// ContractMonths returns the whole-month span between the start and end
// dates, never less than one.
func ContractMonths(c *models.Contract) int {
	months := (c.EndDate.Year()-c.StartDate.Year())*12 + int(c.EndDate.Month()) - int(c.StartDate.Month())
	if c.EndDate.Day() > c.StartDate.Day() {
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}

// ContractValue is the total rent over the contract's life.
func ContractValue(c *models.Contract) float64 {
	return c.MonthlyRent * float64(ContractMonths(c))
}

// FindOverlap returns the first existing contract for the unit whose date
// range overlaps [start, end], ignoring the contract with skipID (the one
// being edited). Nil means the range is free.
func FindOverlap(contracts []*models.Contract, unitID string, start, end time.Time, skipID string) *models.Contract {
	for _, c := range contracts {
		if c.UnitID != unitID || c.ID == skipID {
			continue
		}
		if c.Overlaps(start, end) {
			return c
		}
	}
	return nil
}
