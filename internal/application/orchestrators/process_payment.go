package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"clubhub/internal/domain/payment"
	"clubhub/internal/domain/session"
)

// PaymentWriter persists payments.
type PaymentWriter interface {
	Save(ctx context.Context, value payment.Payment) error
}

// ProcessPaymentInput contains the data needed to record a payment.
type ProcessPaymentInput struct {
	AmountCents int64
	Payer       session.Snapshot
}

// ProcessPaymentDeps contains the dependencies for ExecuteProcessPayment.
type ProcessPaymentDeps struct {
	PaymentStore PaymentWriter
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteProcessPayment records a GCash payment as awaiting verification.
// No money moves; verification is a manual follow-up step.
// PRE: Payer is an authenticated identity
// POST: the payment is persisted with StatusAwaitingVerification
func ExecuteProcessPayment(ctx context.Context, input ProcessPaymentInput, deps ProcessPaymentDeps) (payment.Payment, error) {
	p := payment.Payment{
		ID:          deps.GenerateID(),
		PayerRef:    input.Payer.Ref.String(),
		AmountCents: input.AmountCents,
		Method:      payment.MethodGCash,
		Status:      payment.StatusAwaitingVerification,
		CreatedAt:   deps.Now(),
	}
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}
	if err := deps.PaymentStore.Save(ctx, p); err != nil {
		return payment.Payment{}, err
	}
	slog.Info("payment_recorded",
		"payment_id", p.ID,
		"payer", p.PayerRef,
		"amount_cents", p.AmountCents)
	return p, nil
}
