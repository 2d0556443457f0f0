package reports

import (
	"sort"
	"time"

	"github.com/sakanapp/sakan/internal/models"
)

// Debits increase what the resident owes; the "payment" type is money
// received and credits the account. Deposit, income and expense entries do
// not move a resident's balance.
func signedAmount(p *models.Payment) float64 {
	switch p.Type {
	case models.PaymentTypeRent, models.PaymentTypeUtilities, models.PaymentTypeMaintenance:
		return -p.Amount
	case models.PaymentTypePayment:
		return p.Amount
	}
	return 0
}

// Balance returns the resident's signed balance over all their payments.
// Non-negative means the resident is in credit, negative means they owe.
// The result is a plain sum, so it does not depend on payment order.
func Balance(payments []*models.Payment, residentID string) float64 {
	var total float64
	for _, p := range payments {
		if p.ResidentID != residentID {
			continue
		}
		total += signedAmount(p)
	}
	return total
}

// StatementEntry is one line of a resident's running statement.
type StatementEntry struct {
	Payment *models.Payment
	Change  float64
	Running float64
}

// Statement builds the resident's date-ordered running statement. The final
// running value always equals Balance for the same inputs.
func Statement(payments []*models.Payment, residentID string) []StatementEntry {
	own := make([]*models.Payment, 0)
	for _, p := range payments {
		if p.ResidentID == residentID && signedAmount(p) != 0 {
			own = append(own, p)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Date.Before(own[j].Date) })

	entries := make([]StatementEntry, 0, len(own))
	var running float64
	for _, p := range own {
		change := signedAmount(p)
		running += change
		entries = append(entries, StatementEntry{Payment: p, Change: change, Running: running})
	}
	return entries
}

// MonthlyRevenue sums paid income-side payments dated in the given month.
func MonthlyRevenue(payments []*models.Payment, year int, month time.Month) float64 {
	var total float64
	for _, p := range payments {
		if p.Status != models.PaymentStatusPaid {
			continue
		}
		if p.Date.Year() != year || p.Date.Month() != month {
			continue
		}
		if isIncomeType(p.Type) {
			total += p.Amount
		}
	}
	return total
}

func isIncomeType(t models.PaymentType) bool {
	switch t {
	case models.PaymentTypePayment, models.PaymentTypeRent, models.PaymentTypeUtilities,
		models.PaymentTypeDeposit, models.PaymentTypeIncome:
		return true
	}
	return false
}

// TotalIncome sums all paid income-side payments.
func TotalIncome(payments []*models.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == models.PaymentStatusPaid && isIncomeType(p.Type) {
			total += p.Amount
		}
	}
	return total
}

// TotalExpense sums all expense entries regardless of status.
func TotalExpense(payments []*models.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Type == models.PaymentTypeExpense {
			total += p.Amount
		}
	}
	return total
}

// NetIncome is income minus expense.
func NetIncome(payments []*models.Payment) float64 {
	return TotalIncome(payments) - TotalExpense(payments)
}
