package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptstudio/promptstudio-go/internal/middleware"
	"github.com/promptstudio/promptstudio-go/internal/model"
	"github.com/promptstudio/promptstudio-go/internal/service"
)

// PromptHandler handles HTTP requests for a caller's own prompts.
type PromptHandler struct {
	service *service.PromptService
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(svc *service.PromptService) *PromptHandler {
	return &PromptHandler{service: svc}
}

// HandleList handles GET /api/v1/prompts requests.
func (h *PromptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	prompts, err := h.service.ListOwn(r.Context(), id.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, prompts)
}

// HandleCreate handles POST /api/v1/prompts requests.
func (h *PromptHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var draft model.PromptDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	p, err := h.service.Create(r.Context(), id.ID, draft)
	if err != nil {
		writePromptError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// HandleGet handles GET /api/v1/prompts/{id} requests.
func (h *PromptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	promptID, ok := promptIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id.ID, promptID)
	if err != nil {
		writePromptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /api/v1/prompts/{id} requests. Only the fields
// present in the body change.
func (h *PromptHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	promptID, ok := promptIDParam(w, r)
	if !ok {
		return
	}

	var patch model.PromptPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.Empty() {
		writeJSON(w, http.StatusBadRequest, errorResponse("no fields to update"))
		return
	}

	p, err := h.service.Update(r.Context(), id.ID, promptID, patch)
	if err != nil {
		writePromptError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /api/v1/prompts/{id} requests.
func (h *PromptHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	promptID, ok := promptIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id.ID, promptID); err != nil {
		writePromptError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func promptIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	promptID := chi.URLParam(r, "id")
	if promptID == "" || len(promptID) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid prompt id"))
		return "", false
	}
	return promptID, true
}

func writePromptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrInvalidCategory):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPromptNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
