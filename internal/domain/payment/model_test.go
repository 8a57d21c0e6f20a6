package payment

import (
	"errors"
	"testing"
)

func validPayment() Payment {
	return Payment{
		ID:          "pay-1",
		PayerRef:    "4",
		AmountCents: 15000,
		Method:      MethodGCash,
		Status:      StatusAwaitingVerification,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Payment)
		wantErr error
	}{
		{name: "valid", mutate: func(p *Payment) {}},
		{name: "zero amount", mutate: func(p *Payment) { p.AmountCents = 0 }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(p *Payment) { p.AmountCents = -100 }, wantErr: ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayment()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bad method", func(t *testing.T) {
		p := validPayment()
		p.Method = "cash"
		if p.Validate() == nil {
			t.Error("expected error for unsupported method")
		}
	})
	t.Run("bad status", func(t *testing.T) {
		p := validPayment()
		p.Status = "pending"
		if p.Validate() == nil {
			t.Error("expected error for unknown status")
		}
	})
}

func TestVerify(t *testing.T) {
	p := validPayment()
	if err := p.Verify(); err != nil {
		t.Fatalf("Verify() = %v, want nil", err)
	}
	if p.Status != StatusVerified {
		t.Errorf("status = %s, want %s", p.Status, StatusVerified)
	}

	// A second verification is rejected.
	if err := p.Verify(); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("second Verify() = %v, want %v", err, ErrNotAwaiting)
	}
}
