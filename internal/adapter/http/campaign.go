package httpadapter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campaign-manager/internal/core/domain"
)

const msgCampaignNotFound = "Campaign not found"

// campaignID parses the {id} path parameter. An id that is not a positive
// integer cannot name any campaign and is reported as not found.
func campaignID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound(msgCampaignNotFound, domain.ErrNotFound)
	}
	return id, nil
}

// scoped converts domain.ErrNotFound into the campaign-specific 404.
func scoped(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(msgCampaignNotFound, err)
	}
	return err
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	campaigns, err := h.campaigns.List(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	writeData(w, http.StatusOK, campaigns)
}

// handleCampaignStats returns the caller's aggregates. A user without
// campaigns gets all zeros.
func (h *Handler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())
	stats, err := h.campaigns.Stats(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if stats == nil {
		stats = &domain.CampaignStats{}
	}
	writeData(w, http.StatusOK, stats)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Get(r.Context(), id, ident.UserID)
	if err != nil {
		h.writeError(w, r, scoped(err))
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())
	var body campaignRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	nc, err := body.validateCreate()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Create(r.Context(), ident.UserID, nc)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

// handleUpdateCampaign applies a partial update. Only supplied fields are
// validated and changed; an empty body yields HTTP 400.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body campaignRequest
	if err = decodeJSON(w, r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	patch, err := body.validatePatch()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.campaigns.Update(r.Context(), id, ident.UserID, patch)
	if err != nil {
		h.writeError(w, r, scoped(err))
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.campaigns.Delete(r.Context(), id, ident.UserID); err != nil {
		h.writeError(w, r, scoped(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
