package handler

import (
	"net/http"

	"github.com/promptstudio/promptstudio-go/internal/middleware"
	"github.com/promptstudio/promptstudio-go/internal/service"
)

// ProfileHandler handles HTTP requests for the caller's profile.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGet handles GET /api/v1/profile requests.
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	profile, err := h.service.EnsureProfile(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
