package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakanapp/sakan/internal/models"
)

func payment(residentID string, typ models.PaymentType, amount float64, d time.Time, status models.PaymentStatus) *models.Payment {
	return &models.Payment{
		ResidentID: residentID,
		Type:       typ,
		Amount:     amount,
		Date:       d,
		Status:     status,
	}
}

func TestBalance(t *testing.T) {
	jan := date(2026, 1, 5)

	t.Run("rent charge offset by payment", func(t *testing.T) {
		payments := []*models.Payment{
			payment("r1", models.PaymentTypeRent, 1000, jan, models.PaymentStatusPaid),
			payment("r1", models.PaymentTypePayment, 1000, jan.AddDate(0, 0, 3), models.PaymentStatusPaid),
		}
		assert.Equal(t, 0.0, Balance(payments, "r1"))
	})

	t.Run("unpaid rent leaves a debt", func(t *testing.T) {
		payments := []*models.Payment{
			payment("r1", models.PaymentTypeRent, 1000, jan, models.PaymentStatusPending),
		}
		assert.Equal(t, -1000.0, Balance(payments, "r1"))
	})

	t.Run("deposit and building entries do not move the balance", func(t *testing.T) {
		payments := []*models.Payment{
			payment("r1", models.PaymentTypeDeposit, 5000, jan, models.PaymentStatusPaid),
			payment("", models.PaymentTypeExpense, 750, jan, models.PaymentStatusPaid),
			payment("", models.PaymentTypeIncome, 300, jan, models.PaymentStatusPaid),
		}
		assert.Equal(t, 0.0, Balance(payments, "r1"))
	})

	t.Run("other residents' payments are ignored", func(t *testing.T) {
		payments := []*models.Payment{
			payment("r1", models.PaymentTypeRent, 1000, jan, models.PaymentStatusPaid),
			payment("r2", models.PaymentTypePayment, 9999, jan, models.PaymentStatusPaid),
		}
		assert.Equal(t, -1000.0, Balance(payments, "r1"))
	})

	t.Run("order independent", func(t *testing.T) {
		a := payment("r1", models.PaymentTypeRent, 1000, jan, models.PaymentStatusPaid)
		b := payment("r1", models.PaymentTypePayment, 400, jan.AddDate(0, 0, 1), models.PaymentStatusPaid)
		c := payment("r1", models.PaymentTypeUtilities, 200, jan.AddDate(0, 0, 2), models.PaymentStatusPaid)

		assert.Equal(t, Balance([]*models.Payment{a, b, c}, "r1"), Balance([]*models.Payment{c, a, b}, "r1"))
	})
}

func TestStatement(t *testing.T) {
	payments := []*models.Payment{
		payment("r1", models.PaymentTypePayment, 800, date(2026, 2, 10), models.PaymentStatusPaid),
		payment("r1", models.PaymentTypeRent, 1000, date(2026, 1, 1), models.PaymentStatusPaid),
		payment("r1", models.PaymentTypeRent, 1000, date(2026, 2, 1), models.PaymentStatusPaid),
		payment("r1", models.PaymentTypeDeposit, 5000, date(2026, 1, 2), models.PaymentStatusPaid),
		payment("r2", models.PaymentTypeRent, 700, date(2026, 1, 15), models.PaymentStatusPaid),
	}

	entries := Statement(payments, "r1")
	require.Len(t, entries, 3, "deposits and other residents stay off the statement")

	assert.Equal(t, date(2026, 1, 1), entries[0].Payment.Date)
	assert.Equal(t, -1000.0, entries[0].Running)
	assert.Equal(t, -2000.0, entries[1].Running)
	assert.Equal(t, -1200.0, entries[2].Running)

	assert.Equal(t, Balance(payments, "r1"), entries[len(entries)-1].Running,
		"final running value must equal the balance")
}

func TestMonthlyRevenue(t *testing.T) {
	payments := []*models.Payment{
		payment("r1", models.PaymentTypeRent, 2500, date(2026, 1, 5), models.PaymentStatusPaid),
		payment("r2", models.PaymentTypePayment, 1800, date(2026, 1, 20), models.PaymentStatusPaid),
		payment("r1", models.PaymentTypeRent, 2500, date(2026, 1, 6), models.PaymentStatusPending),
		payment("r1", models.PaymentTypeRent, 2500, date(2026, 2, 5), models.PaymentStatusPaid),
		payment("", models.PaymentTypeExpense, 900, date(2026, 1, 10), models.PaymentStatusPaid),
	}

	assert.Equal(t, 4300.0, MonthlyRevenue(payments, 2026, time.January))
	assert.Equal(t, 2500.0, MonthlyRevenue(payments, 2026, time.February))
	assert.Equal(t, 0.0, MonthlyRevenue(payments, 2025, time.December))
}

func TestTotals(t *testing.T) {
	payments := []*models.Payment{
		payment("r1", models.PaymentTypeRent, 2500, date(2026, 1, 5), models.PaymentStatusPaid),
		payment("r1", models.PaymentTypeDeposit, 5000, date(2026, 1, 5), models.PaymentStatusPaid),
		payment("r1", models.PaymentTypeRent, 2500, date(2026, 2, 5), models.PaymentStatusPending),
		payment("", models.PaymentTypeIncome, 1200, date(2026, 1, 12), models.PaymentStatusPaid),
		payment("", models.PaymentTypeExpense, 800, date(2026, 1, 15), models.PaymentStatusPaid),
		payment("", models.PaymentTypeExpense, 450, date(2026, 1, 25), models.PaymentStatusPending),
	}

	assert.Equal(t, 8700.0, TotalIncome(payments))
	assert.Equal(t, 1250.0, TotalExpense(payments), "expenses count regardless of status")
	assert.Equal(t, 7450.0, NetIncome(payments))
}
