package service

import (
	"context"
	"fmt"

	"github.com/sakanapp/sakan/internal/models"
	"github.com/sakanapp/sakan/internal/reports"
)

// CreatePayment validates and stores a ledger entry. Income/expense entries
// may omit the resident; everything else must name one. A missing reference
// is auto-generated.
func (b *Building) CreatePayment(ctx context.Context, p *models.Payment) error {
	if !p.Type.Valid() {
		return b.fail(fmt.Errorf("%w: unknown payment type %q", ErrValidation, p.Type), "Unknown payment type")
	}
	if p.Amount <= 0 {
		return b.fail(fmt.Errorf("%w: amount must be positive", ErrValidation), "Amount must be greater than zero")
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusPaid
	}
	if !p.Status.Valid() {
		return b.fail(fmt.Errorf("%w: unknown payment status %q", ErrValidation, p.Status), "Unknown payment status")
	}

	if p.ResidentID == "" {
		if p.Type != models.PaymentTypeIncome && p.Type != models.PaymentTypeExpense {
			return b.fail(fmt.Errorf("%w: payment requires a resident", ErrValidation),
				"This payment type requires a resident")
		}
	} else if _, err := b.store.Residents.Get(ctx, p.ResidentID); err != nil {
		return b.fail(ErrResidentNotFound, "Payment resident does not exist")
	}

	if p.Reference == "" {
		ref, err := b.nextPaymentReference(ctx)
		if err != nil {
			return err
		}
		p.Reference = ref
	}

	if err := b.store.Payments.Add(ctx, p); err != nil {
		return b.fail(err, "Could not save the payment")
	}
	b.success(fmt.Sprintf("Payment %s recorded", p.Reference))
	return nil
}

func (b *Building) UpdatePayment(ctx context.Context, id string, patch map[string]any) (*models.Payment, error) {
	p, err := b.store.Payments.Update(ctx, id, patch)
	if err != nil {
		return nil, b.fail(err, "Could not update the payment")
	}
	b.success(fmt.Sprintf("Payment %s updated", p.Reference))
	return p, nil
}

func (b *Building) DeletePayment(ctx context.Context, id string) error {
	if err := b.store.Payments.Delete(ctx, id); err != nil {
		return b.fail(err, "Payment not found")
	}
	b.success("Payment deleted")
	return nil
}

// ResidentBalance is the signed balance over the resident's payments:
// non-negative means in credit, negative means they owe.
func (b *Building) ResidentBalance(ctx context.Context, residentID string) (float64, error) {
	payments, err := b.store.Payments.All(ctx)
	if err != nil {
		return 0, err
	}
	return reports.Balance(payments, residentID), nil
}

// nextPaymentReference numbers references sequentially within the year:
// PAY-2026-0001 and so on. Sequence restarts each year; references stay
// unique because the year is part of the value.
func (b *Building) nextPaymentReference(ctx context.Context) (string, error) {
	payments, err := b.store.Payments.All(ctx)
	if err != nil {
		return "", err
	}
	year := b.now().Year()
	prefix := fmt.Sprintf("PAY-%d-", year)
	seq := 0
	for _, p := range payments {
		var n int
		if _, err := fmt.Sscanf(p.Reference, prefix+"%d", &n); err == nil && n > seq {
			seq = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}
