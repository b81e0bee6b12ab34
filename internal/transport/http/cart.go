package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/service"
)

type CartHandler struct {
	carts  service.CartService
	logger hclog.Logger
}

func NewCartHandler(carts service.CartService, logger hclog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// AddItem handles POST /users/{userId}/cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "please provide productId and quantity"})
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	cart, err := h.carts.AddItem(r.Context(), mux.Vars(r)["userId"], body.ProductID, body.Quantity)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Success", cart)
}

// Get handles GET /users/{userId}/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Success", cart)
}

// Clear handles DELETE /users/{userId}/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), mux.Vars(r)["userId"]); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "cart deleted", nil)
}
