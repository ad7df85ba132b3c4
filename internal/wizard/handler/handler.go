// Package handler exposes the intake wizard over HTTP. It decodes requests,
// resolves the session from the cookie middleware, and delegates to the
// wizard service.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vetform/internal/platform/metrics"
	"vetform/internal/platform/middleware"
	"vetform/internal/wizard/files"
	"vetform/internal/wizard/models"
	"vetform/internal/wizard/service"
	derrors "vetform/pkg/domain-errors"
	"vetform/pkg/platform/httputil"
)

// Service defines the wizard operations the handler depends on.
type Service interface {
	State(ctx context.Context, sessionID string) models.WizardState
	ReplaceBasicDetails(ctx context.Context, sessionID string, details models.BasicDetails) (models.WizardState, error)
	ReplaceProfessionalDetails(ctx context.Context, sessionID string, details models.ProfessionalDetails) (models.WizardState, error)
	ReplaceExperience(ctx context.Context, sessionID string, positions []models.Position) (models.WizardState, error)
	ReplaceIdentity(ctx context.Context, sessionID string, identity models.IdentityVerification) (models.WizardState, error)
	AttachDocument(ctx context.Context, sessionID string, target service.DocumentTarget, index int, up files.Upload) (models.FileSlot, error)
	Document(ctx context.Context, sessionID, ref string) (*files.Entry, error)
	Advance(ctx context.Context, sessionID string) (models.WizardState, models.ValidationErrors, error)
	Retreat(ctx context.Context, sessionID string) (models.WizardState, error)
	SaveDraft(ctx context.Context, sessionID, userAgent string) error
	RestoreDraft(ctx context.Context, sessionID string) (models.WizardState, bool, error)
	DiscardDraft(ctx context.Context, sessionID string) error
	Summary(ctx context.Context, sessionID string) service.Summary
}

// Handler handles the /intake endpoints.
type Handler struct {
	logger          *slog.Logger
	wizard          Service
	metrics         *metrics.Metrics
	maxRequestBytes int64
}

// New creates a new wizard Handler.
func New(wizard Service, logger *slog.Logger, m *metrics.Metrics, maxRequestBytes int64) *Handler {
	return &Handler{
		logger:          logger,
		wizard:          wizard,
		metrics:         m,
		maxRequestBytes: maxRequestBytes,
	}
}

// Register mounts the wizard routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	intake := chi.NewRouter()
	intake.Use(middleware.Recovery(h.logger))
	intake.Use(middleware.RequestID)
	intake.Use(middleware.Session)
	intake.Use(middleware.Logger(h.logger))
	intake.Use(middleware.Latency(h.metrics))

	intake.Get("/state", h.handleState)
	intake.Put("/steps/{step}", h.handleReplaceStep)
	intake.Post("/advance", h.handleAdvance)
	intake.Post("/retreat", h.handleRetreat)
	intake.Post("/documents", h.handleAttachDocument)
	intake.Get("/documents/{ref}", h.handleDocument)
	intake.Post("/draft", h.handleSaveDraft)
	intake.Get("/draft", h.handleRestoreDraft)
	intake.Delete("/draft", h.handleDiscardDraft)
	intake.Get("/summary", h.handleSummary)

	r.Mount("/intake", intake)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := h.wizard.State(ctx, middleware.GetSessionID(ctx))
	httputil.WriteJSON(w, http.StatusOK, newStateResponse(state))
}

// handleReplaceStep replaces one step's sub-record wholesale. The step name in
// the path selects the payload shape.
func (h *Handler) handleReplaceStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	var (
		state models.WizardState
		err   error
	)
	switch step := models.StepID(chi.URLParam(r, "step")); step {
	case models.StepBasicDetails:
		var req basicDetailsRequest
		if err = h.decode(w, r, &req); err != nil {
			return
		}
		state, err = h.wizard.ReplaceBasicDetails(ctx, sessionID, req.toModel())
	case models.StepProfessionalDetails:
		var req professionalDetailsRequest
		if err = h.decode(w, r, &req); err != nil {
			return
		}
		state, err = h.wizard.ReplaceProfessionalDetails(ctx, sessionID, req.toModel())
	case models.StepExperience:
		var req experienceRequest
		if err = h.decode(w, r, &req); err != nil {
			return
		}
		state, err = h.wizard.ReplaceExperience(ctx, sessionID, req.toModel())
	case models.StepIdentityVerification:
		var req identityRequest
		if err = h.decode(w, r, &req); err != nil {
			return
		}
		state, err = h.wizard.ReplaceIdentity(ctx, sessionID, req.toModel())
	default:
		httputil.WriteError(w, derrors.New(derrors.CodeNotFound, "unknown step"))
		return
	}
	if err != nil {
		h.writeServiceError(w, r, "failed to replace step", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newStateResponse(state))
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	state, errs, err := h.wizard.Advance(ctx, sessionID)
	if err != nil {
		h.writeServiceError(w, r, "failed to advance", err)
		return
	}
	resp := advanceResponse{
		Moved:  len(errs) == 0,
		Errors: errs,
		State:  newStateResponse(state),
	}
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusUnprocessableEntity
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) handleRetreat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := h.wizard.Retreat(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		h.writeServiceError(w, r, "failed to retreat", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newStateResponse(state))
}

// handleAttachDocument accepts a multipart upload with a "file" part plus
// "target" and, for certifications, "index" form fields.
func (h *Handler) handleAttachDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	if err := r.ParseMultipartForm(h.maxRequestBytes); err != nil {
		h.logger.WarnContext(ctx, "invalid multipart request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid multipart request"))
		return
	}

	target := service.DocumentTarget(r.FormValue("target"))
	index := 0
	if raw := r.FormValue("index"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "index must be an integer"))
			return
		}
		index = parsed
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "missing file part"))
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "failed to read file"))
		return
	}

	slot, err := h.wizard.AttachDocument(ctx, sessionID, target, index, files.Upload{
		FileName: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Data:     data,
	})
	if err != nil {
		h.writeServiceError(w, r, "failed to attach document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, documentResponse{Document: slot})
}

// handleDocument streams a stored upload back for preview or download.
func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry, err := h.wizard.Document(ctx, middleware.GetSessionID(ctx), chi.URLParam(r, "ref"))
	if err != nil {
		h.writeServiceError(w, r, "failed to fetch document", err)
		return
	}
	w.Header().Set("Content-Type", entry.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(entry.Size, 10))
	_, _ = w.Write(entry.Bytes())
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.wizard.SaveDraft(ctx, middleware.GetSessionID(ctx), r.UserAgent()); err != nil {
		h.writeServiceError(w, r, "failed to save draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRestoreDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, restored, err := h.wizard.RestoreDraft(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		h.writeServiceError(w, r, "failed to restore draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, restoreResponse{
		Restored: restored,
		State:    newStateResponse(state),
	})
}

func (h *Handler) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.wizard.DiscardDraft(ctx, middleware.GetSessionID(ctx)); err != nil {
		h.writeServiceError(w, r, "failed to discard draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httputil.WriteJSON(w, http.StatusOK, h.wizard.Summary(ctx, middleware.GetSessionID(ctx)))
}

// decode reads a JSON body into dst, writing the error response itself on
// failure so callers can just return.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return err
	}
	return nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if derrors.Is(err, derrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
