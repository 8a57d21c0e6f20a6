package payment

import (
	"errors"
	"time"
)

// MethodGCash is the only supported payment method. The flow is a QR
// hand-off: the payer confirms after scanning, staff verify out of band.
const MethodGCash = "gcash"

// Payment statuses
const (
	StatusAwaitingVerification = "awaiting_verification"
	StatusVerified             = "verified"
)

// Domain errors
var (
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	ErrNotAwaiting   = errors.New("payment is not awaiting verification")
)

// Payment is one confirmed GCash hand-off awaiting staff verification.
type Payment struct {
	ID          string
	PayerRef    string // canonical identity string of the payer
	AmountCents int64
	Method      string
	Status      string
	CreatedAt   time.Time
}

// Validate checks if the Payment has valid data.
// PRE: Payment struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Payment) Validate() error {
	if p.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if p.Method != MethodGCash {
		return errors.New("payment method must be 'gcash'")
	}
	if p.Status != StatusAwaitingVerification && p.Status != StatusVerified {
		return errors.New("payment status must be 'awaiting_verification' or 'verified'")
	}
	return nil
}

// Verify marks the payment as verified by staff.
// PRE: Payment is awaiting verification
// POST: Status is verified
func (p *Payment) Verify() error {
	if p.Status != StatusAwaitingVerification {
		return ErrNotAwaiting
	}
	p.Status = StatusVerified
	return nil
}
