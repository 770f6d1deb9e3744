package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/matching"
)

type matchingService interface {
	AvailableHosts(ctx context.Context, params application.AvailableHostsParams) ([]matching.HostMatch, error)
	RoomAvailability(ctx context.Context, principal application.Principal, roomID, date string) (application.RoomAvailabilityReport, error)
	MatchBrandSchedule(ctx context.Context, params application.MatchBrandScheduleParams) (*matching.MatchReport, error)
}

type MatchingHandler struct {
	service   matchingService
	responder responder
	logger    *slog.Logger
}

func NewMatchingHandler(service matchingService, logger *slog.Logger) *MatchingHandler {
	base := defaultLogger(logger)
	return &MatchingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *MatchingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MatchingHandler", operation, attrs...)
}

func (h *MatchingHandler) AvailableHosts(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req availableHostsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AvailableHosts", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode host search request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AvailableHosts", "principal_id", principal.UserID, "brand_id", req.BrandID, "date", req.Date)

	hosts, err := h.service.AvailableHosts(r.Context(), application.AvailableHostsParams{
		Principal: principal,
		BrandID:   strings.TrimSpace(req.BrandID),
		RoomID:    strings.TrimSpace(req.RoomID),
		Date:      strings.TrimSpace(req.Date),
		TimeSlots: req.TimeSlots,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "host search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(hosts)).InfoContext(r.Context(), "available hosts computed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availableHostsResponse{
		Hosts:          toHostMatchDTOs(hosts),
		TotalAvailable: len(hosts),
	})
}

// RoomAvailability serves GET /room-availability/{roomId}/{date}. The rest
// argument is the path remainder after the route prefix.
func (h *MatchingHandler) RoomAvailability(w http.ResponseWriter, r *http.Request, rest string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		h.log(r.Context(), "RoomAvailability", "error_kind", "bad_request").ErrorContext(r.Context(), "malformed room availability path", "path", r.URL.Path)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}
	roomID, date := parts[0], parts[1]

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "RoomAvailability", "principal_id", principal.UserID, "room_id", roomID, "date", date)

	report, err := h.service.RoomAvailability(r.Context(), principal, roomID, date)
	if err != nil {
		logger.ErrorContext(r.Context(), "room availability lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "room availability computed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toRoomAvailabilityDTO(report))
}

func (h *MatchingHandler) MatchBrandSchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req matchBrandScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "MatchBrandSchedule", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode schedule match request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "MatchBrandSchedule", "principal_id", principal.UserID, "schedule_id", req.ScheduleID, "date", req.Date)

	report, err := h.service.MatchBrandSchedule(r.Context(), application.MatchBrandScheduleParams{
		Principal:  principal,
		ScheduleID: strings.TrimSpace(req.ScheduleID),
		Date:       strings.TrimSpace(req.Date),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "schedule match failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("available_rooms", report.Summary.AvailableRooms, "available_hosts", report.Summary.AvailableHosts).InfoContext(r.Context(), "brand schedule matched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMatchReportDTO(report))
}

type availableHostsRequest struct {
	BrandID   string   `json:"brandId"`
	RoomID    string   `json:"roomId"`
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
}

type availableHostsResponse struct {
	Hosts          []hostMatchDTO `json:"hosts"`
	TotalAvailable int            `json:"totalAvailable"`
}

type hostMatchDTO struct {
	Host             hostProfileDTO `json:"host"`
	AvailableSlots   []string       `json:"availableSlots"`
	MatchingSlots    []string       `json:"matchingSlots"`
	IsFullyAvailable bool           `json:"isFullyAvailable"`
}

type hostProfileDTO struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	BrandTags []string `json:"brandTags,omitempty"`
}

func toHostMatchDTOs(hosts []matching.HostMatch) []hostMatchDTO {
	if len(hosts) == 0 {
		return nil
	}
	out := make([]hostMatchDTO, 0, len(hosts))
	for _, host := range hosts {
		out = append(out, hostMatchDTO{
			Host: hostProfileDTO{
				ID:        host.Host.ID,
				Email:     host.Host.Email,
				Name:      host.Host.Name,
				BrandTags: host.Host.Affinity.Brands(),
			},
			AvailableSlots:   host.AvailableSlots,
			MatchingSlots:    host.MatchingSlots,
			IsFullyAvailable: host.IsFullyAvailable,
		})
	}
	return out
}

type roomAvailabilityResponse struct {
	RoomID         string                `json:"roomId"`
	Date           string                `json:"date"`
	Availability   []slotAvailabilityDTO `json:"availability"`
	TotalSlots     int                   `json:"totalSlots"`
	OccupiedSlots  int                   `json:"occupiedSlots"`
	AvailableSlots int                   `json:"availableSlots"`
}

// slotAvailabilityDTO is one canonical slot in a room's day. Occupied
// slots carry the booking holding them; free slots serialize assignment
// as null.
type slotAvailabilityDTO struct {
	Time       string           `json:"time"`
	Available  bool             `json:"available"`
	Assignment *slotOccupantDTO `json:"assignment"`
}

type slotOccupantDTO struct {
	HostID       string `json:"hostId"`
	HostName     string `json:"hostName"`
	BrandID      string `json:"brandId"`
	BrandName    string `json:"brandName"`
	AssignmentID string `json:"assignmentId"`
}

func toRoomAvailabilityDTO(report application.RoomAvailabilityReport) roomAvailabilityResponse {
	slots := make([]slotAvailabilityDTO, 0, len(report.Availability))
	occupied := 0
	for _, slot := range report.Availability {
		dto := slotAvailabilityDTO{Time: slot.TimeSlot, Available: slot.IsAvailable}
		if !slot.IsAvailable {
			occupied++
		}
		if slot.Assignment != nil {
			dto.Assignment = &slotOccupantDTO{
				HostID:       slot.Assignment.HostID,
				HostName:     slot.Assignment.HostName,
				BrandID:      slot.Assignment.BrandID,
				BrandName:    slot.Assignment.BrandName,
				AssignmentID: slot.Assignment.ID,
			}
		}
		slots = append(slots, dto)
	}
	return roomAvailabilityResponse{
		RoomID:         report.Room.ID,
		Date:           report.Date,
		Availability:   slots,
		TotalSlots:     len(slots),
		OccupiedSlots:  occupied,
		AvailableSlots: len(slots) - occupied,
	}
}

type matchBrandScheduleRequest struct {
	ScheduleID string `json:"brandScheduleId"`
	Date       string `json:"date"`
}

type matchReportResponse struct {
	Schedule  scheduleTemplateDTO `json:"schedule"`
	Date      string              `json:"date"`
	DayOfWeek string              `json:"dayOfWeek"`
	Rooms     []roomMatchDTO      `json:"rooms"`
	Hosts     []hostMatchDTO      `json:"hosts"`
	Summary   matchSummaryDTO     `json:"summary"`
}

type scheduleTemplateDTO struct {
	ID         string   `json:"id"`
	BrandID    string   `json:"brandId"`
	BrandName  string   `json:"brandName"`
	DaysOfWeek []string `json:"daysOfWeek"`
	TimeSlots  []string `json:"timeSlots"`
}

type roomMatchDTO struct {
	Room             roomProfileDTO `json:"room"`
	AvailableSlots   []string       `json:"availableSlots"`
	IsFullyAvailable bool           `json:"isFullyAvailable"`
}

type roomProfileDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type matchSummaryDTO struct {
	TotalRooms          int `json:"totalRooms"`
	AvailableRooms      int `json:"availableRooms"`
	FullyAvailableRooms int `json:"fullyAvailableRooms"`
	TotalHosts          int `json:"totalHosts"`
	AvailableHosts      int `json:"availableHosts"`
	FullyAvailableHosts int `json:"fullyAvailableHosts"`
}

func toMatchReportDTO(report *matching.MatchReport) matchReportResponse {
	rooms := make([]roomMatchDTO, 0, len(report.Rooms))
	for _, room := range report.Rooms {
		rooms = append(rooms, roomMatchDTO{
			Room: roomProfileDTO{
				ID:          room.Room.ID,
				Name:        room.Room.Name,
				Description: room.Room.Description,
				IsActive:    room.Room.IsActive,
			},
			AvailableSlots:   room.AvailableSlots,
			IsFullyAvailable: room.IsFullyAvailable,
		})
	}
	return matchReportResponse{
		Schedule: scheduleTemplateDTO{
			ID:         report.Schedule.ID,
			BrandID:    report.Schedule.BrandID,
			BrandName:  report.Schedule.BrandName,
			DaysOfWeek: report.Schedule.DaysOfWeek,
			TimeSlots:  report.Schedule.TimeSlots,
		},
		Date:      report.Date,
		DayOfWeek: report.DayOfWeek,
		Rooms:     rooms,
		Hosts:     toHostMatchDTOs(report.Hosts),
		Summary: matchSummaryDTO{
			TotalRooms:          report.Summary.TotalRooms,
			AvailableRooms:      report.Summary.AvailableRooms,
			FullyAvailableRooms: report.Summary.FullyAvailableRooms,
			TotalHosts:          report.Summary.TotalHosts,
			AvailableHosts:      report.Summary.AvailableHosts,
			FullyAvailableHosts: report.Summary.FullyAvailableHosts,
		},
	}
}
