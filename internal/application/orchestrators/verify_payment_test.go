package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubhub/internal/domain/payment"
	"clubhub/internal/domain/session"
	"clubhub/internal/domain/user"
)

func recordPayment(t *testing.T, f *fixture, payer session.Snapshot, cents int64) payment.Payment {
	t.Helper()
	p, err := ExecuteProcessPayment(context.Background(), ProcessPaymentInput{
		AmountCents: cents,
		Payer:       payer,
	}, ProcessPaymentDeps{
		PaymentStore: f.payments,
		GenerateID:   fixedID,
		Now:          fixedNow,
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	return p
}

// TestExecuteVerifyPayment tests that staff can verify a recorded payment
// exactly once.
func TestExecuteVerifyPayment(t *testing.T) {
	f := newFixture()
	payer := session.Snapshot{Ref: user.NumericRef(4), Email: "john@example.com", Role: user.RoleMember}
	staff := session.Snapshot{Ref: user.NumericRef(2), Email: "leader@example.com", Role: user.RoleAdmin}
	p := recordPayment(t, f, payer, 15000)

	got, err := ExecuteVerifyPayment(context.Background(), VerifyPaymentInput{
		PaymentID: p.ID,
		Actor:     staff,
	}, VerifyPaymentDeps{PaymentStore: f.payments})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != payment.StatusVerified {
		t.Errorf("expected status %s, got %s", payment.StatusVerified, got.Status)
	}
	if stored := f.payments.m[p.ID]; stored.Status != payment.StatusVerified {
		t.Errorf("stored status = %s, want %s", stored.Status, payment.StatusVerified)
	}

	// A second verification is not idempotent: it surfaces the domain error.
	_, err = ExecuteVerifyPayment(context.Background(), VerifyPaymentInput{
		PaymentID: p.ID,
		Actor:     staff,
	}, VerifyPaymentDeps{PaymentStore: f.payments})
	if !errors.Is(err, payment.ErrNotAwaiting) {
		t.Errorf("expected ErrNotAwaiting, got %v", err)
	}
}

// TestExecuteVerifyPayment_Forbidden tests that members cannot verify.
func TestExecuteVerifyPayment_Forbidden(t *testing.T) {
	f := newFixture()
	payer := session.Snapshot{Ref: user.NumericRef(4), Role: user.RoleMember}
	p := recordPayment(t, f, payer, 15000)

	_, err := ExecuteVerifyPayment(context.Background(), VerifyPaymentInput{
		PaymentID: p.ID,
		Actor:     payer,
	}, VerifyPaymentDeps{PaymentStore: f.payments})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if stored := f.payments.m[p.ID]; stored.Status != payment.StatusAwaitingVerification {
		t.Errorf("stored status changed to %s", stored.Status)
	}
}

// TestExecuteVerifyPayment_UnknownID tests the missing-payment guard.
func TestExecuteVerifyPayment_UnknownID(t *testing.T) {
	f := newFixture()
	staff := session.Snapshot{Ref: user.NumericRef(1), Role: user.RoleCreator}

	_, err := ExecuteVerifyPayment(context.Background(), VerifyPaymentInput{
		PaymentID: "missing",
		Actor:     staff,
	}, VerifyPaymentDeps{PaymentStore: f.payments})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
