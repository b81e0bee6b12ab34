package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
	logger hclog.Logger
}

func NewOrderHandler(orders service.OrderService, logger hclog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// Create handles POST /users/{userId}/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartID string `json:"cartId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CartID == "" {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "please provide cartId"})
		return
	}

	order, err := h.orders.Create(r.Context(), mux.Vars(r)["userId"], body.CartID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Success", order)
}

// Complete handles PUT /users/{userId}/orders
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderID == "" {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "please provide orderId"})
		return
	}

	order, err := h.orders.Complete(r.Context(), mux.Vars(r)["userId"], body.OrderID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "order completed", order)
}
