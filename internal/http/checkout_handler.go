package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/checkout"
	"github.com/gereacosta1/OnePointMotors/internal/domain"
)

type CheckoutHandler struct {
	checkouts *checkout.Service
	timeout   time.Duration
}

func NewCheckoutHandler(checkouts *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
		timeout:   timeout,
	}
}

type InitiateCheckoutRequestDTO struct {
	Buyer domain.Buyer `json:"buyer"`
}

type ConfirmCheckoutRequestDTO struct {
	CheckoutToken string `json:"checkout_token"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	var req InitiateCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.checkouts.Initiate(ctx, sessionID, req.Buyer)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// POST /api/v1/checkout/confirm — the provider's post-payment redirect lands
// here with the checkout token.
func (h *CheckoutHandler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ConfirmCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CheckoutToken == "" {
		respondError(w, http.StatusBadRequest, "missing_checkout_token", "checkout_token is required")
		return
	}

	result, err := h.checkouts.Confirm(ctx, req.CheckoutToken)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", checkout.ErrEmptyCart.Error())
	case errors.Is(err, checkout.ErrBuyerRequired):
		respondError(w, http.StatusBadRequest, "buyer_required", checkout.ErrBuyerRequired.Error())
	case errors.Is(err, checkout.ErrUnknownCheckout):
		respondError(w, http.StatusNotFound, "unknown_checkout", checkout.ErrUnknownCheckout.Error())
	default:
		respondError(w, http.StatusBadGateway, "checkout_failed", "checkout failed")
	}
}
