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

type brandService interface {
	CreateBrand(ctx context.Context, params application.CreateBrandParams) (application.Brand, error)
	GetBrand(ctx context.Context, principal application.Principal, brandID string) (application.Brand, error)
	UpdateBrand(ctx context.Context, params application.UpdateBrandParams) (application.Brand, error)
	DeleteBrand(ctx context.Context, principal application.Principal, brandID string) error
	ListBrands(ctx context.Context, principal application.Principal) ([]application.Brand, error)
}

type BrandHandler struct {
	service   brandService
	responder responder
	logger    *slog.Logger
}

func NewBrandHandler(service brandService, logger *slog.Logger) *BrandHandler {
	base := defaultLogger(logger)
	return &BrandHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BrandHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BrandHandler", operation, attrs...)
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode brand request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID)

	brand, err := h.service.CreateBrand(r.Context(), application.CreateBrandParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "brand creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("brand_id", brand.ID).InfoContext(r.Context(), "brand created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, brandResponse{Brand: toBrandDTO(brand)})
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	brandID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(brandID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing brand id for get")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID, "brand_id", brandID)

	brand, err := h.service.GetBrand(r.Context(), principal, brandID)
	if err != nil {
		logger.ErrorContext(r.Context(), "brand fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, brandResponse{Brand: toBrandDTO(brand)})
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	brandID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(brandID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing brand id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "principal_id", principal.UserID, "brand_id", brandID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode brand update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "principal_id", principal.UserID, "brand_id", brandID)

	brand, err := h.service.UpdateBrand(r.Context(), application.UpdateBrandParams{
		Principal: principal,
		BrandID:   brandID,
		Input:     req.toInput(),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "brand update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "brand updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, brandResponse{Brand: toBrandDTO(brand)})
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	brandID, ok := ResourceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(brandID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing brand id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResourceID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "principal_id", principal.UserID, "brand_id", brandID)
	if err := h.service.DeleteBrand(r.Context(), principal, brandID); err != nil {
		logger.ErrorContext(r.Context(), "brand delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "brand deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)
	brands, err := h.service.ListBrands(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "brand list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(brands)).InfoContext(r.Context(), "brands listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBrandsResponse{Brands: toBrandDTOs(brands)})
}

type brandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r brandRequest) toInput() application.BrandInput {
	return application.BrandInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
	}
}

type brandResponse struct {
	Brand brandDTO `json:"brand"`
}

type listBrandsResponse struct {
	Brands []brandDTO `json:"brands"`
}

type brandDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toBrandDTO(brand application.Brand) brandDTO {
	return brandDTO{
		ID:          brand.ID,
		Name:        brand.Name,
		Description: brand.Description,
		CreatedAt:   brand.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   brand.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBrandDTOs(brands []application.Brand) []brandDTO {
	if len(brands) == 0 {
		return nil
	}
	out := make([]brandDTO, 0, len(brands))
	for _, brand := range brands {
		out = append(out, toBrandDTO(brand))
	}
	return out
}
