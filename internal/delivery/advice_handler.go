package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/olpex/father-bot/internal/broker"
)

// Broker — то, что нужно HTTP-каналу от брокера кредитов
type Broker interface {
	InitiatePurchase(ctx context.Context, identity string) (string, error)
	ConfirmPurchase(ctx context.Context, identity string) int
	Answer(ctx context.Context, identity, question string) (*broker.Answer, error)
}

const msgNoCredits = "No credits available. Please purchase more answers."

type AdviceHandler struct {
	broker Broker
	log    *logger.ZapLogger
}

func NewAdviceHandler(b Broker, log *logger.ZapLogger) *AdviceHandler {
	return &AdviceHandler{broker: b, log: log}
}

// POST /create-payment-intent
func (h *AdviceHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	secret, err := h.broker.InitiatePurchase(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"clientSecret": secret})
}

// POST /payment-success
func (h *AdviceHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	h.broker.ConfirmPurchase(r.Context(), req.Email)

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// POST /get-answer
func (h *AdviceHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Question string `json:"question"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "missing question")
		return
	}

	ans, err := h.broker.Answer(r.Context(), req.Email, req.Question)
	switch {
	case errors.Is(err, broker.ErrInsufficientCredits):
		writeError(w, http.StatusPaymentRequired, msgNoCredits)
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"answer":            ans.Text,
		"credits_remaining": ans.CreditsRemaining,
	})
}

func (h *AdviceHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid json " + r.URL.Path, Error: err})
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
