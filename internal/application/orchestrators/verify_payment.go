package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"clubhub/internal/domain/payment"
	"clubhub/internal/domain/session"
)

// PaymentStoreForVerify is the subset of the payment store needed to
// verify a payment.
type PaymentStoreForVerify interface {
	GetByID(ctx context.Context, id string) (payment.Payment, error)
	Save(ctx context.Context, value payment.Payment) error
}

// VerifyPaymentInput contains the data needed to verify a payment.
type VerifyPaymentInput struct {
	PaymentID string
	Actor     session.Snapshot
}

// VerifyPaymentDeps contains the dependencies for ExecuteVerifyPayment.
type VerifyPaymentDeps struct {
	PaymentStore PaymentStoreForVerify
}

// ExecuteVerifyPayment marks a recorded GCash hand-off as verified by
// staff. Verification happens once: re-verifying surfaces the domain
// error so the caller can tell a double click from a success.
// PRE: Actor holds the Creator or Admin role
// POST: the payment status is verified
func ExecuteVerifyPayment(ctx context.Context, input VerifyPaymentInput, deps VerifyPaymentDeps) (payment.Payment, error) {
	if !canManageMembers(input.Actor) {
		return payment.Payment{}, ErrForbidden
	}

	p, err := deps.PaymentStore.GetByID(ctx, input.PaymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payment.Payment{}, ErrNotFound
		}
		return payment.Payment{}, err
	}
	if err := p.Verify(); err != nil {
		return payment.Payment{}, err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}

	slog.Info("payment_verified",
		"payment_id", p.ID,
		"payer", p.PayerRef,
		"verified_by", input.Actor.Ref.String())
	return p, nil
}
