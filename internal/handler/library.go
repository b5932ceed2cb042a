package handler

import (
	"net/http"

	"github.com/promptstudio/promptstudio-go/internal/service"
)

// LibraryHandler serves the public prompt library. No credential is needed.
type LibraryHandler struct {
	service *service.PromptService
}

func NewLibraryHandler(svc *service.PromptService) *LibraryHandler {
	return &LibraryHandler{service: svc}
}

// HandleList handles GET /api/v1/library requests.
func (h *LibraryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.service.ListPublic(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, prompts)
}

// HandleView handles POST /api/v1/library/{id}/view requests.
func (h *LibraryHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	promptID, ok := promptIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.RecordView(r.Context(), promptID); err != nil {
		writePromptError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
