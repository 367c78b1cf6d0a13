package checkout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/cart"
	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/gereacosta1/OnePointMotors/internal/payment"
)

// PaymentClient is the slice of the provider client the checkout flow needs.
type PaymentClient interface {
	CreateCheckout(ctx context.Context, payload *domain.CheckoutPayload) (*payment.CheckoutResponse, error)
	AuthorizeCharge(ctx context.Context, checkoutToken string) (*payment.Charge, error)
	CaptureCharge(ctx context.Context, chargeID string) (*payment.Charge, error)
}

type InitiateResult struct {
	OrderID       string `json:"order_id"`
	CheckoutToken string `json:"checkout_token"`
	RedirectURL   string `json:"redirect_url"`
}

type ConfirmResult struct {
	OrderID  string `json:"order_id"`
	ChargeID string `json:"charge_id"`
	Status   string `json:"status"`
}

// Service drives the two halves of a checkout: handing the assembled payload
// to the provider, and clearing the cart once the provider confirms.
type Service struct {
	carts     *cart.Service
	assembler *Assembler
	payments  PaymentClient
	pending   *Tracker
}

func NewService(carts *cart.Service, assembler *Assembler, payments PaymentClient) *Service {
	return &Service{
		carts:     carts,
		assembler: assembler,
		payments:  payments,
		pending:   NewTracker(),
	}
}

// Initiate assembles the checkout payload from the session's cart and
// registers it with the provider. The cart is left untouched: it is cleared
// only when Confirm sees the provider's redirect for this attempt.
func (s *Service) Initiate(ctx context.Context, sessionID string, buyer domain.Buyer) (*InitiateResult, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	payload, err := s.assembler.BuildPayload(c.Items, buyer)
	if err != nil {
		return nil, err
	}

	resp, err := s.payments.CreateCheckout(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("checkout initiation failed: %w", err)
	}

	s.pending.Register(PendingCheckout{
		OrderID:       payload.OrderID,
		SessionID:     sessionID,
		CheckoutToken: resp.CheckoutToken,
		CreatedAt:     time.Now(),
	})

	log.Printf("checkout initiated order_id=%s session=%s", payload.OrderID, sessionID)

	return &InitiateResult{
		OrderID:       payload.OrderID,
		CheckoutToken: resp.CheckoutToken,
		RedirectURL:   resp.RedirectURL,
	}, nil
}

// Confirm handles the provider's post-payment redirect: authorize, capture,
// then clear the originating session's cart.
func (s *Service) Confirm(ctx context.Context, checkoutToken string) (*ConfirmResult, error) {
	p, ok := s.pending.ResolveToken(checkoutToken)
	if !ok {
		return nil, ErrUnknownCheckout
	}

	charge, err := s.payments.AuthorizeCharge(ctx, checkoutToken)
	if err != nil {
		return nil, fmt.Errorf("charge authorization failed: %w", err)
	}

	captured, err := s.payments.CaptureCharge(ctx, charge.ID)
	if err != nil {
		return nil, fmt.Errorf("charge capture failed: %w", err)
	}

	if _, err := s.carts.Clear(ctx, p.SessionID); err != nil {
		// Payment went through; the stale cart is an annoyance, not a loss.
		log.Printf("failed to clear cart after confirmation order_id=%s: %v", p.OrderID, err)
	}
	s.pending.Drop(p.OrderID)

	log.Printf("checkout confirmed order_id=%s charge_id=%s", p.OrderID, captured.ID)

	return &ConfirmResult{
		OrderID:  p.OrderID,
		ChargeID: captured.ID,
		Status:   captured.Status,
	}, nil
}
