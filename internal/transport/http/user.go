package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/service"
)

type UserHandler struct {
	users  service.UserService
	logger hclog.Logger
}

func NewUserHandler(users service.UserService, logger hclog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "invalid request body"})
		return
	}

	user, err := h.users.Register(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Success", user)
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "invalid request body"})
		return
	}

	token, user, err := h.users.Login(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Success", map[string]any{
		"userId": user.ID.Hex(),
		"token":  token,
	})
}

// UpdateProfile handles PUT /users/{userId}/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "invalid request body"})
		return
	}
	if patch.Empty() {
		writeJSON(w, http.StatusBadRequest,
			envelope{Status: false, Message: "please enter profile details for updating"})
		return
	}

	user, updated, err := h.users.UpdateProfile(r.Context(), mux.Vars(r)["userId"], patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !updated {
		writeSuccess(w, http.StatusOK, "nothing to update", nil)
		return
	}

	writeSuccess(w, http.StatusOK, "profile updated successfully", user)
}

// Profile handles GET /users/{userId}/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Success", user)
}
