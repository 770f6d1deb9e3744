package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// BrandRepository captures the persistence operations needed by the brand service.
type BrandRepository interface {
	CreateBrand(ctx context.Context, brand Brand) (Brand, error)
	GetBrand(ctx context.Context, id string) (Brand, error)
	UpdateBrand(ctx context.Context, brand Brand) (Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	ListBrands(ctx context.Context) ([]Brand, error)
}

// BrandService orchestrates validation, authorization, and persistence for brands.
type BrandService struct {
	brands      BrandRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBrandService constructs a brand service with the provided dependencies.
func NewBrandService(brands BrandRepository, idGenerator func() string, now func() time.Time) *BrandService {
	return NewBrandServiceWithLogger(brands, idGenerator, now, nil)
}

// NewBrandServiceWithLogger constructs a brand service with a specified logger.
func NewBrandServiceWithLogger(brands BrandRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BrandService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BrandService{brands: brands, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *BrandService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BrandService", operation, attrs...)
}

// CreateBrand validates input and persists a new brand for administrators.
func (s *BrandService) CreateBrand(ctx context.Context, params CreateBrandParams) (brand Brand, err error) {
	if s == nil {
		err = fmt.Errorf("BrandService is nil")
		return
	}
	if s.brands == nil {
		err = fmt.Errorf("brand repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateBrand",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create brand", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("brand_id", brand.ID).InfoContext(ctx, "brand created")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	vErr := validateBrandInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	candidate := Brand{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(params.Input.Name),
		Description: strings.TrimSpace(params.Input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	brand, err = s.brands.CreateBrand(ctx, candidate)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// GetBrand returns a single brand for any authenticated user.
func (s *BrandService) GetBrand(ctx context.Context, principal Principal, brandID string) (Brand, error) {
	if s == nil {
		return Brand{}, fmt.Errorf("BrandService is nil")
	}
	if s.brands == nil {
		return Brand{}, fmt.Errorf("brand repository not configured")
	}

	brand, err := s.brands.GetBrand(ctx, brandID)
	if err != nil {
		return Brand{}, mapRepoError(err)
	}
	return brand, nil
}

// UpdateBrand validates input and updates an existing brand for administrators.
func (s *BrandService) UpdateBrand(ctx context.Context, params UpdateBrandParams) (brand Brand, err error) {
	if s == nil {
		err = fmt.Errorf("BrandService is nil")
		return
	}
	if s.brands == nil {
		err = fmt.Errorf("brand repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBrand",
		"principal_id", params.Principal.UserID,
		"brand_id", params.BrandID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update brand", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("brand_id", brand.ID).InfoContext(ctx, "brand updated")
	}()

	if !params.Principal.IsAdmin() {
		err = ErrUnauthorized
		return
	}

	var existing Brand
	existing, err = s.brands.GetBrand(ctx, params.BrandID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := validateBrandInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(params.Input.Name)
	updated.Description = strings.TrimSpace(params.Input.Description)
	updated.UpdatedAt = s.now()

	brand, err = s.brands.UpdateBrand(ctx, updated)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	return
}

// DeleteBrand removes an existing brand when requested by an administrator.
func (s *BrandService) DeleteBrand(ctx context.Context, principal Principal, brandID string) error {
	if s == nil {
		return fmt.Errorf("BrandService is nil")
	}
	if !principal.IsAdmin() {
		return ErrUnauthorized
	}
	if s.brands == nil {
		return fmt.Errorf("brand repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBrand",
		"principal_id", principal.UserID,
		"brand_id", brandID,
	)

	if err := s.brands.DeleteBrand(ctx, brandID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete brand", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "brand deleted")
	return nil
}

// ListBrands returns the brand catalog for any authenticated user, sorted
// by name.
func (s *BrandService) ListBrands(ctx context.Context, principal Principal) (brands []Brand, err error) {
	if s == nil {
		err = fmt.Errorf("BrandService is nil")
		return
	}
	if s.brands == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListBrands",
		"principal_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list brands", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(brands)).InfoContext(ctx, "brands listed")
	}()

	var raw []Brand
	raw, err = s.brands.ListBrands(ctx)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	brands = make([]Brand, len(raw))
	copy(brands, raw)

	sort.Slice(brands, func(i, j int) bool {
		if strings.EqualFold(brands[i].Name, brands[j].Name) {
			return brands[i].ID < brands[j].ID
		}
		return strings.ToLower(brands[i].Name) < strings.ToLower(brands[j].Name)
	})

	return
}

func validateBrandInput(input BrandInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}

	return vErr
}
