package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(h *AdviceHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	RegisterRoutes(r, h)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	return r
}

func RegisterRoutes(r chi.Router, h *AdviceHandler) {
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- оплата ---
		pr.Post("/create-payment-intent", h.CreatePaymentIntent)
		// без проверки, что оплата реально прошла
		pr.Post("/payment-success", h.PaymentSuccess)

		// --- ответы ---
		pr.Post("/get-answer", h.GetAnswer)
	})
}
