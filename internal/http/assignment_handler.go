package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/matching"
)

type assignmentService interface {
	ValidateAssignment(ctx context.Context, params application.ValidateAssignmentParams) (matching.Verdict, error)
	CreateAssignment(ctx context.Context, params application.CreateAssignmentParams) (application.Assignment, error)
	GetAssignment(ctx context.Context, principal application.Principal, assignmentID string) (application.Assignment, error)
	DeleteAssignment(ctx context.Context, principal application.Principal, assignmentID string) error
	ListAssignments(ctx context.Context, principal application.Principal) ([]application.Assignment, error)
	MyRooms(ctx context.Context, principal application.Principal) ([]application.HostRoom, error)
}

type AssignmentHandler struct {
	service   assignmentService
	responder responder
	logger    *slog.Logger
}

func NewAssignmentHandler(service assignmentService, logger *slog.Logger) *AssignmentHandler {
	base := defaultLogger(logger)
	return &AssignmentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AssignmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AssignmentHandler", operation, attrs...)
}

// Validate dry-runs the booking checks and reports the verdict without
// persisting anything. A failed check is a 200 with valid set to false,
// not an error.
func (h *AssignmentHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Validate", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode validation request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Validate", "principal_id", principal.UserID, "room_id", req.RoomID, "date", req.Date)

	verdict, err := h.service.ValidateAssignment(r.Context(), application.ValidateAssignmentParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "assignment validation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("valid", verdict.Valid, "code", verdict.Code).InfoContext(r.Context(), "assignment validated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toVerdictDTO(verdict))
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode assignment request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID, "room_id", req.RoomID, "date", req.Date)

	assignment, err := h.service.CreateAssignment(r.Context(), application.CreateAssignmentParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "assignment creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("assignment_id", assignment.ID).InfoContext(r.Context(), "assignment created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, assignmentResponse{Assignment: toAssignmentDTO(assignment)})
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	assignmentID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(assignmentID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing assignment id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "assignment_id", assignmentID)

	assignment, err := h.service.GetAssignment(r.Context(), principal, assignmentID)
	if err != nil {
		logger.ErrorContext(r.Context(), "assignment fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, assignmentResponse{Assignment: toAssignmentDTO(assignment)})
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	assignmentID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(assignmentID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing assignment id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "assignment_id", assignmentID)
	if err := h.service.DeleteAssignment(r.Context(), principal, assignmentID); err != nil {
		logger.ErrorContext(r.Context(), "assignment delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "assignment deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)

	assignments, err := h.service.ListAssignments(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "assignment list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(assignments)).InfoContext(r.Context(), "assignments listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAssignmentsResponse{Assignments: toAssignmentDTOs(assignments)})
}

func (h *AssignmentHandler) MyRooms(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "MyRooms", "principal_id", principal.UserID)

	rooms, err := h.service.MyRooms(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "my rooms lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(rooms)).InfoContext(r.Context(), "host rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, myRoomsResponse{Rooms: toHostRoomDTOs(rooms)})
}

type assignmentRequest struct {
	RoomID    string   `json:"roomId"`
	Date      string   `json:"date"`
	BrandID   string   `json:"brandId"`
	HostID    string   `json:"hostId"`
	TimeSlots []string `json:"timeSlots"`
}

func (r assignmentRequest) toInput() application.AssignmentInput {
	return application.AssignmentInput{
		RoomID:    strings.TrimSpace(r.RoomID),
		Date:      strings.TrimSpace(r.Date),
		BrandID:   strings.TrimSpace(r.BrandID),
		HostID:    strings.TrimSpace(r.HostID),
		TimeSlots: r.TimeSlots,
	}
}

type assignmentResponse struct {
	Assignment assignmentDTO `json:"assignment"`
}

type listAssignmentsResponse struct {
	Assignments []assignmentDTO `json:"assignments"`
}

type assignmentDTO struct {
	ID        string   `json:"id"`
	RoomID    string   `json:"roomId"`
	RoomName  string   `json:"roomName"`
	Date      string   `json:"date"`
	BrandID   string   `json:"brandId"`
	BrandName string   `json:"brandName"`
	HostID    string   `json:"hostId"`
	HostName  string   `json:"hostName"`
	TimeSlots []string `json:"timeSlots"`
	CreatedAt string   `json:"createdAt"`
	CreatedBy string   `json:"createdBy"`
}

func toAssignmentDTO(assignment application.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:        assignment.ID,
		RoomID:    assignment.RoomID,
		RoomName:  assignment.RoomName,
		Date:      assignment.Date,
		BrandID:   assignment.BrandID,
		BrandName: assignment.BrandName,
		HostID:    assignment.HostID,
		HostName:  assignment.HostName,
		TimeSlots: assignment.TimeSlots,
		CreatedAt: assignment.CreatedAt.UTC().Format(time.RFC3339Nano),
		CreatedBy: assignment.CreatedBy,
	}
}

func toAssignmentDTOs(assignments []application.Assignment) []assignmentDTO {
	if len(assignments) == 0 {
		return nil
	}
	out := make([]assignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, toAssignmentDTO(assignment))
	}
	return out
}

type myRoomsResponse struct {
	Rooms []hostRoomDTO `json:"rooms"`
}

type hostRoomDTO struct {
	Room        roomDTO         `json:"room"`
	Assignments []assignmentDTO `json:"assignments"`
}

func toHostRoomDTOs(rooms []application.HostRoom) []hostRoomDTO {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]hostRoomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, hostRoomDTO{
			Room:        toRoomDTO(room.Room),
			Assignments: toAssignmentDTOs(room.Assignments),
		})
	}
	return out
}

type verdictDTO struct {
	Valid              bool     `json:"valid"`
	Message            string   `json:"message,omitempty"`
	Error              string   `json:"error,omitempty"`
	Reason             string   `json:"reason,omitempty"`
	Code               string   `json:"code,omitempty"`
	UnavailableSlots   []string `json:"unavailableSlots,omitempty"`
	HostAvailableSlots []string `json:"hostAvailableSlots,omitempty"`
	HostBrandTags      []string `json:"hostBrandTags,omitempty"`
}

// verdictHeadline returns the short user-facing error for a failed check.
// The detailed explanation travels separately in reason.
func verdictHeadline(code string) string {
	switch code {
	case matching.CodeBrandIncompatible:
		return "Brand compatibility failed"
	case matching.CodeRoomSlotOccupied:
		return "Room time slots not available"
	case matching.CodeHostNotAvailable:
		return "Host not available for requested time slots"
	default:
		return "Room assignment is not valid"
	}
}

func toVerdictDTO(verdict matching.Verdict) verdictDTO {
	if verdict.Valid {
		return verdictDTO{Valid: true, Message: "Room assignment is valid"}
	}
	return verdictDTO{
		Error:              verdictHeadline(verdict.Code),
		Reason:             verdict.Reason,
		Code:               verdict.Code,
		UnavailableSlots:   verdict.UnavailableSlots,
		HostAvailableSlots: verdict.HostAvailableSlots,
		HostBrandTags:      verdict.HostBrandTags,
	}
}
