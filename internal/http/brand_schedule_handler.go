package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/studio-scheduler/internal/application"
)

type brandScheduleService interface {
	CreateBrandSchedule(ctx context.Context, params application.CreateBrandScheduleParams) (application.BrandSchedule, error)
	GetBrandSchedule(ctx context.Context, principal application.Principal, scheduleID string) (application.BrandSchedule, error)
	UpdateBrandSchedule(ctx context.Context, params application.UpdateBrandScheduleParams) (application.BrandSchedule, error)
	DeleteBrandSchedule(ctx context.Context, principal application.Principal, scheduleID string) error
	ListBrandSchedules(ctx context.Context, principal application.Principal) ([]application.BrandSchedule, error)
}

type BrandScheduleHandler struct {
	service   brandScheduleService
	responder responder
	logger    *slog.Logger
}

func NewBrandScheduleHandler(service brandScheduleService, logger *slog.Logger) *BrandScheduleHandler {
	base := defaultLogger(logger)
	return &BrandScheduleHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BrandScheduleHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BrandScheduleHandler", operation, attrs...)
}

func (h *BrandScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req brandScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode brand schedule request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID, "brand_id", req.BrandID)

	schedule, err := h.service.CreateBrandSchedule(r.Context(), application.CreateBrandScheduleParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "brand schedule creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("schedule_id", schedule.ID).InfoContext(r.Context(), "brand schedule created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, brandScheduleResponse{Schedule: toBrandScheduleDTO(schedule)})
}

func (h *BrandScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing schedule id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "schedule_id", scheduleID)

	schedule, err := h.service.GetBrandSchedule(r.Context(), principal, scheduleID)
	if err != nil {
		logger.ErrorContext(r.Context(), "brand schedule fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, brandScheduleResponse{Schedule: toBrandScheduleDTO(schedule)})
}

func (h *BrandScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing schedule id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req brandScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "schedule_id", scheduleID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode brand schedule update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "schedule_id", scheduleID)

	schedule, err := h.service.UpdateBrandSchedule(r.Context(), application.UpdateBrandScheduleParams{
		Principal:  principal,
		ScheduleID: scheduleID,
		Input:      req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "brand schedule update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "brand schedule updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, brandScheduleResponse{Schedule: toBrandScheduleDTO(schedule)})
}

func (h *BrandScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing schedule id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "schedule_id", scheduleID)
	if err := h.service.DeleteBrandSchedule(r.Context(), principal, scheduleID); err != nil {
		logger.ErrorContext(r.Context(), "brand schedule delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "brand schedule deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *BrandScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	schedules, err := h.service.ListBrandSchedules(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "brand schedule list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(schedules)).InfoContext(r.Context(), "brand schedules listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBrandSchedulesResponse{Schedules: toBrandScheduleDTOs(schedules)})
}

type brandScheduleRequest struct {
	BrandID    string   `json:"brandId"`
	DaysOfWeek []string `json:"daysOfWeek"`
	TimeSlots  []string `json:"timeSlots"`
}

func (r brandScheduleRequest) toInput() application.BrandScheduleInput {
	return application.BrandScheduleInput{
		BrandID:    strings.TrimSpace(r.BrandID),
		DaysOfWeek: r.DaysOfWeek,
		TimeSlots:  r.TimeSlots,
	}
}

type brandScheduleResponse struct {
	Schedule brandScheduleDTO `json:"schedule"`
}

type listBrandSchedulesResponse struct {
	Schedules []brandScheduleDTO `json:"schedules"`
}

type brandScheduleDTO struct {
	ID         string   `json:"id"`
	BrandID    string   `json:"brandId"`
	BrandName  string   `json:"brandName"`
	DaysOfWeek []string `json:"daysOfWeek"`
	TimeSlots  []string `json:"timeSlots"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

func toBrandScheduleDTO(schedule application.BrandSchedule) brandScheduleDTO {
	return brandScheduleDTO{
		ID:         schedule.ID,
		BrandID:    schedule.BrandID,
		BrandName:  schedule.BrandName,
		DaysOfWeek: schedule.DaysOfWeek,
		TimeSlots:  schedule.TimeSlots,
		CreatedAt:  schedule.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  schedule.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBrandScheduleDTOs(schedules []application.BrandSchedule) []brandScheduleDTO {
	if len(schedules) == 0 {
		return nil
	}
	out := make([]brandScheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		out = append(out, toBrandScheduleDTO(schedule))
	}
	return out
}
