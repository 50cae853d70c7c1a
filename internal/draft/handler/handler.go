package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"creditref/internal/draft/models"
	"creditref/internal/draft/service"
	"creditref/internal/request"
	dErrors "creditref/pkg/domain-errors"
	"creditref/pkg/platform/httputil"
	"creditref/pkg/requestcontext"
)

// Service defines the draft operations the handler needs.
type Service interface {
	Build(ctx context.Context, in service.BuildInput) (*models.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Draft, error)
}

// Handler exposes request drafts over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a draft handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts draft endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/requests", h.HandleBuild)
	r.Get("/requests/{id}", h.HandleGet)
}

type validationResponse struct {
	Error            string              `json:"error"`
	ErrorDescription string              `json:"error_description"`
	Kind             request.PartialKind `json:"kind"`
	Field            request.Field       `json:"field"`
	Input            json.RawMessage     `json:"input"`
}

// HandleBuild handles POST /requests.
func (h *Handler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	in, ok := httputil.DecodeJSON[service.BuildInput](w, r, h.logger)
	if !ok {
		return
	}

	draft, err := h.service.Build(ctx, *in)
	if err != nil {
		if verr, ok := request.AsValidationError(err); ok {
			h.logger.InfoContext(ctx, "request field rejected",
				"request_id", requestID,
				"kind", verr.Kind,
				"field", verr.Field,
			)
			rejection := models.NewRejection(verr)
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
				Error:            string(dErrors.CodeValidation),
				ErrorDescription: rejection.Reason,
				Kind:             rejection.Kind,
				Field:            rejection.Field,
				Input:            rejection.Input,
			})
			return
		}
		h.logFailure(ctx, "draft build failed", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "draft created",
		"request_id", requestID,
		"draft_id", draft.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	w.Header().Set("Location", "/v1/requests/"+draft.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, draft)
}

// HandleGet handles GET /requests/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "draft not found"))
		return
	}

	draft, err := h.service.Get(ctx, id)
	if err != nil {
		h.logFailure(ctx, "draft lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, draft)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
