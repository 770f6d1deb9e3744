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

type availabilityService interface {
	SubmitAvailability(ctx context.Context, params application.SubmitAvailabilityParams) (application.HostAvailability, error)
	ListAvailability(ctx context.Context, principal application.Principal) ([]application.HostAvailability, error)
	ListAvailabilityForDate(ctx context.Context, principal application.Principal, date string) ([]application.HostAvailability, error)
	DeleteAvailability(ctx context.Context, principal application.Principal, availabilityID string) error
	HostScheduleStats(ctx context.Context, principal application.Principal) ([]application.HostScheduleStats, error)
}

type AvailabilityHandler struct {
	service   availabilityService
	responder responder
	logger    *slog.Logger
}

func NewAvailabilityHandler(service availabilityService, logger *slog.Logger) *AvailabilityHandler {
	base := defaultLogger(logger)
	return &AvailabilityHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

func (h *AvailabilityHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Submit", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Submit", "principal_id", principal.UserID, "date", req.Date)

	availability, err := h.service.SubmitAvailability(r.Context(), application.SubmitAvailabilityParams{
		Principal: principal,
		Date:      strings.TrimSpace(req.Date),
		TimeSlots: req.TimeSlots,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "availability submission failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("availability_id", availability.ID).InfoContext(r.Context(), "availability submitted")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, availabilityResponse{Availability: toAvailabilityDTO(availability)})
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID, "date", date)

	var (
		records []application.HostAvailability
		err     error
	)
	if date != "" {
		records, err = h.service.ListAvailabilityForDate(r.Context(), principal, date)
	} else {
		records, err = h.service.ListAvailability(r.Context(), principal)
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "availability list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(records)).InfoContext(r.Context(), "availability listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAvailabilityResponse{Availability: toAvailabilityDTOs(records)})
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	availabilityID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(availabilityID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing availability id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "availability_id", availabilityID)
	if err := h.service.DeleteAvailability(r.Context(), principal, availabilityID); err != nil {
		logger.ErrorContext(r.Context(), "availability delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "availability deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AvailabilityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Stats", "principal_id", principal.UserID)

	stats, err := h.service.HostScheduleStats(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "host schedule stats failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(stats)).InfoContext(r.Context(), "host schedule stats computed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, hostStatsResponse{Stats: toHostStatsDTOs(stats)})
}

type availabilityRequest struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
}

type availabilityResponse struct {
	Availability availabilityDTO `json:"availability"`
}

type listAvailabilityResponse struct {
	Availability []availabilityDTO `json:"availability"`
}

type availabilityDTO struct {
	ID        string   `json:"id"`
	HostID    string   `json:"hostId"`
	HostName  string   `json:"hostName"`
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
	CreatedAt string   `json:"createdAt"`
}

func toAvailabilityDTO(availability application.HostAvailability) availabilityDTO {
	return availabilityDTO{
		ID:        availability.ID,
		HostID:    availability.HostID,
		HostName:  availability.HostName,
		Date:      availability.Date,
		TimeSlots: availability.TimeSlots,
		CreatedAt: availability.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toAvailabilityDTOs(records []application.HostAvailability) []availabilityDTO {
	if len(records) == 0 {
		return nil
	}
	out := make([]availabilityDTO, 0, len(records))
	for _, record := range records {
		out = append(out, toAvailabilityDTO(record))
	}
	return out
}

type hostStatsResponse struct {
	Stats []hostStatsDTO `json:"stats"`
}

type hostStatsDTO struct {
	HostID         string `json:"hostId"`
	HostName       string `json:"hostName"`
	TotalDays      int    `json:"totalDays"`
	TotalSlots     int    `json:"totalSlots"`
	AssignedSlots  int    `json:"assignedSlots"`
	RemainingSlots int    `json:"remainingSlots"`
}

func toHostStatsDTOs(stats []application.HostScheduleStats) []hostStatsDTO {
	if len(stats) == 0 {
		return nil
	}
	out := make([]hostStatsDTO, 0, len(stats))
	for _, item := range stats {
		out = append(out, hostStatsDTO{
			HostID:         item.HostID,
			HostName:       item.HostName,
			TotalDays:      item.TotalDays,
			TotalSlots:     item.TotalSlots,
			AssignedSlots:  item.AssignedSlots,
			RemainingSlots: item.RemainingSlots,
		})
	}
	return out
}
