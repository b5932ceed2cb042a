package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/promptstudio/promptstudio-go/internal/enhance"
	"github.com/promptstudio/promptstudio-go/internal/metrics"
	"github.com/promptstudio/promptstudio-go/internal/model"
)

// Enhancer is the completion gateway behind the public endpoints.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (model.EnhancementResult, error)
	Ideas(ctx context.Context, topic, category string) (model.IdeasResponse, error)
}

// EnhanceHandler serves the credential-free enhancement endpoints. Every
// response, errors included, carries permissive CORS headers so browsers on
// any origin can call it.
type EnhanceHandler struct {
	gateway Enhancer
	logger  *slog.Logger
}

// NewEnhanceHandler creates a new EnhanceHandler.
func NewEnhanceHandler(gateway Enhancer, logger *slog.Logger) *EnhanceHandler {
	return &EnhanceHandler{gateway: gateway, logger: logger.With("system", "enhance-http")}
}

func setGatewayHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

// gatewayHeaders sets the gateway's CORS headers before anything downstream,
// such as the rate limiter, can answer.
func gatewayHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setGatewayHeaders(w)
		next.ServeHTTP(w, r)
	})
}

// preflight handles the method dispatch shared by the gateway endpoints and
// reports whether the request should go on to be served as a POST.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	setGatewayHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return false
	case http.MethodPost:
		return true
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("Method not allowed"))
		return false
	}
}

// HandleEnhance handles /enhance for every method.
func (h *EnhanceHandler) HandleEnhance(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}

	var req model.EnhanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := h.gateway.Enhance(r.Context(), req.Prompt)
	h.record("enhance", err, time.Since(start))
	if err != nil {
		h.writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleIdeas handles /ideas for every method.
func (h *EnhanceHandler) HandleIdeas(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}

	var req model.IdeasRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	ideas, err := h.gateway.Ideas(r.Context(), req.Topic, req.Category)
	h.record("ideas", err, time.Since(start))
	if err != nil {
		h.writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ideas)
}

func (h *EnhanceHandler) record(operation string, err error, d time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = enhance.KindOf(err).String()
	}
	metrics.RecordEnhancement(operation, outcome, d)
}

func (h *EnhanceHandler) writeGatewayError(w http.ResponseWriter, err error) {
	var gwErr *enhance.Error
	if !errors.As(err, &gwErr) {
		h.logger.Error("unexpected gateway error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(enhance.ServerErrorPrefix+err.Error()))
		return
	}
	writeJSON(w, gwErr.HTTPStatus(), errorResponse(gwErr.Message))
}
