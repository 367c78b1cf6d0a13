package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gereacosta1/OnePointMotors/internal/contact"
)

type ContactHandler struct {
	mailer  contact.Mailer
	timeout time.Duration
}

func NewContactHandler(mailer contact.Mailer, timeout time.Duration) *ContactHandler {
	return &ContactHandler{
		mailer:  mailer,
		timeout: timeout,
	}
}

// POST /api/v1/contact
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var msg contact.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := msg.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_message", err.Error())
		return
	}

	if err := h.mailer.Send(ctx, msg); err != nil {
		log.Printf("failed to deliver contact message: %v", err)
		respondError(w, http.StatusBadGateway, "delivery_failed", "could not send message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
