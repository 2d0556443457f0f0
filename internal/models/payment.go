package models

import "time"

// PaymentType distinguishes charges, received money and building-level cash
// flow. Rent/utilities/maintenance are debits charged to a resident,
// "payment" is money received from one, income/expense are building-level
// entries with no resident attached.
type PaymentType string

const (
	PaymentTypePayment     PaymentType = "payment"
	PaymentTypeRent        PaymentType = "rent"
	PaymentTypeUtilities   PaymentType = "utilities"
	PaymentTypeMaintenance PaymentType = "maintenance"
	PaymentTypeDeposit     PaymentType = "deposit"
	PaymentTypeIncome      PaymentType = "income"
	PaymentTypeExpense     PaymentType = "expense"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypePayment, PaymentTypeRent, PaymentTypeUtilities,
		PaymentTypeMaintenance, PaymentTypeDeposit, PaymentTypeIncome, PaymentTypeExpense:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return true
	}
	return false
}

// Payment is one ledger entry. ResidentID is optional for income/expense
// entries. Reference is auto-generated when absent.
type Payment struct {
	Meta
	Type       PaymentType   `json:"type"`
	Amount     float64       `json:"amount"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`
	ResidentID string        `json:"residentId,omitempty"`
	ContractID string        `json:"contractId,omitempty"`
	Reference  string        `json:"reference"`
	Notes      string        `json:"notes,omitempty"`
}

func (p *Payment) Field(name string) (any, bool) {
	switch name {
	case "type":
		return string(p.Type), true
	case "amount":
		return p.Amount, true
	case "date":
		return p.Date, true
	case "status":
		return string(p.Status), true
	case "residentId":
		return p.ResidentID, true
	case "contractId":
		return p.ContractID, true
	case "reference":
		return p.Reference, true
	case "notes":
		return p.Notes, true
	}
	return p.metaField(name)
}
