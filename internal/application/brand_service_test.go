package application

import (
	"context"
	"errors"
	"testing"
)

func TestBrandService_CreateBrand(t *testing.T) {
	t.Parallel()

	t.Run("persists brands for administrators", func(t *testing.T) {
		t.Parallel()

		repo := newBrandRepoStub()
		svc := NewBrandService(repo, sequentialIDs("brand"), fixedNow)

		brand, err := svc.CreateBrand(context.Background(), CreateBrandParams{
			Principal: adminPrincipal,
			Input:     BrandInput{Name: " Glow Cosmetics ", Description: "skincare"},
		})
		if err != nil {
			t.Fatalf("CreateBrand failed: %v", err)
		}
		if brand.ID != "brand-1" || brand.Name != "Glow Cosmetics" {
			t.Fatalf("unexpected brand: %+v", brand)
		}
	})

	t.Run("rejects hosts", func(t *testing.T) {
		t.Parallel()

		svc := NewBrandService(newBrandRepoStub(), nil, nil)
		_, err := svc.CreateBrand(context.Background(), CreateBrandParams{
			Principal: hostPrincipal,
			Input:     BrandInput{Name: "Glow Cosmetics"},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		svc := NewBrandService(newBrandRepoStub(), nil, nil)
		_, err := svc.CreateBrand(context.Background(), CreateBrandParams{
			Principal: adminPrincipal,
			Input:     BrandInput{},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestBrandService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	repo := newBrandRepoStub(Brand{ID: "brand-1", Name: "Glow Cosmetics"})
	svc := NewBrandService(repo, nil, fixedNow)

	brand, err := svc.UpdateBrand(context.Background(), UpdateBrandParams{
		Principal: adminPrincipal,
		BrandID:   "brand-1",
		Input:     BrandInput{Name: "Glow", Description: "renamed"},
	})
	if err != nil {
		t.Fatalf("UpdateBrand failed: %v", err)
	}
	if brand.Name != "Glow" || brand.Description != "renamed" {
		t.Fatalf("unexpected brand: %+v", brand)
	}

	if err := svc.DeleteBrand(context.Background(), hostPrincipal, "brand-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeleteBrand(context.Background(), adminPrincipal, "brand-1"); err != nil {
		t.Fatalf("DeleteBrand failed: %v", err)
	}
	if _, err := svc.GetBrand(context.Background(), adminPrincipal, "brand-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestBrandService_ListBrands_SortsByName(t *testing.T) {
	t.Parallel()

	repo := newBrandRepoStub(
		Brand{ID: "brand-2", Name: "zenith"},
		Brand{ID: "brand-1", Name: "Aurora"},
	)
	svc := NewBrandService(repo, nil, nil)

	brands, err := svc.ListBrands(context.Background(), hostPrincipal)
	if err != nil {
		t.Fatalf("ListBrands failed: %v", err)
	}
	if len(brands) != 2 || brands[0].Name != "Aurora" {
		t.Fatalf("expected name order, got %+v", brands)
	}
}
