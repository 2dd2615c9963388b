package httpadapter

import (
	"errors"
	"net/http"

	"campaign-manager/internal/core/domain"
)

// handleRegister creates an account. Validation failures and an already
// registered email produce HTTP 400; on success it returns 201 with the
// user and a bearer token.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := body.validate()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, resp)
}

// handleLogin exchanges credentials for a token. Unknown emails and wrong
// passwords both produce HTTP 401 "Invalid credentials".
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := body.validate()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	user, err := h.auth.Me(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		err = notFound("User not found", err)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, user)
}
