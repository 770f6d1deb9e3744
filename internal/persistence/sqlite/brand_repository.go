package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// BrandRepository stores sponsor brands under the brand: prefix.
type BrandRepository struct {
	store persistence.RecordStore
}

// NewBrandRepository creates a new brand repository.
func NewBrandRepository(store persistence.RecordStore) *BrandRepository {
	return &BrandRepository{store: store}
}

func brandKey(id string) string {
	return persistence.KeyPrefixBrand + id
}

func brandToRecord(brand application.Brand) persistence.BrandRecord {
	return persistence.BrandRecord{
		ID:          brand.ID,
		Name:        brand.Name,
		Description: brand.Description,
		CreatedAt:   brand.CreatedAt,
		UpdatedAt:   brand.UpdatedAt,
	}
}

func brandFromRecord(rec persistence.BrandRecord) application.Brand {
	return application.Brand{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// CreateBrand stores a new brand.
func (r *BrandRepository) CreateBrand(ctx context.Context, brand application.Brand) (application.Brand, error) {
	if err := r.put(ctx, brand); err != nil {
		return application.Brand{}, err
	}
	return brand, nil
}

// GetBrand returns the brand with the given ID.
func (r *BrandRepository) GetBrand(ctx context.Context, id string) (application.Brand, error) {
	value, err := r.store.Get(ctx, brandKey(id))
	if err != nil {
		return application.Brand{}, err
	}
	var rec persistence.BrandRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return application.Brand{}, fmt.Errorf("failed to decode brand record: %w", err)
	}
	return brandFromRecord(rec), nil
}

// UpdateBrand replaces the stored brand.
func (r *BrandRepository) UpdateBrand(ctx context.Context, brand application.Brand) (application.Brand, error) {
	if _, err := r.GetBrand(ctx, brand.ID); err != nil {
		return application.Brand{}, err
	}
	if err := r.put(ctx, brand); err != nil {
		return application.Brand{}, err
	}
	return brand, nil
}

// DeleteBrand removes the brand with the given ID.
func (r *BrandRepository) DeleteBrand(ctx context.Context, id string) error {
	return r.store.Delete(ctx, brandKey(id))
}

// ListBrands returns every stored brand.
func (r *BrandRepository) ListBrands(ctx context.Context) ([]application.Brand, error) {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixBrand)
	if err != nil {
		return nil, err
	}
	brands := make([]application.Brand, 0, len(stored))
	for _, item := range stored {
		var rec persistence.BrandRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode brand record %s: %w", item.Key, err)
		}
		brands = append(brands, brandFromRecord(rec))
	}
	return brands, nil
}

func (r *BrandRepository) put(ctx context.Context, brand application.Brand) error {
	value, err := json.Marshal(brandToRecord(brand))
	if err != nil {
		return fmt.Errorf("failed to encode brand: %w", err)
	}
	return r.store.Put(ctx, brandKey(brand.ID), value)
}
