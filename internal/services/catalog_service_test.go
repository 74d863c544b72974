package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return NewCatalogService(repositories.NewCatalogRepository(setupServiceDB(t)))
}

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	category, err := svc.CreateCategory(ctx, "memberships", "recurring plans")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Duplicate names collide
	if _, err := svc.CreateCategory(ctx, "memberships", ""); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate name, got %v", err)
	}

	updated, err := svc.UpdateCategory(ctx, category.ID, "plans", "renamed")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "plans" {
		t.Errorf("expected renamed category, got %s", updated.Name)
	}

	if err := svc.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cats, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 0 {
		t.Errorf("expected empty catalog, got %d categories", len(cats))
	}
}

func TestCatalogService_DeleteCategoryInUse(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	category, err := svc.CreateCategory(ctx, "memberships", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateService(ctx, category.ID, "monthly pass", "", 500000, 30, 0); err != nil {
		t.Fatalf("create service: %v", err)
	}

	if err := svc.DeleteCategory(ctx, category.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for referenced category, got %v", err)
	}
}

func TestCatalogService_Services(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	category, err := svc.CreateCategory(ctx, "memberships", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	offering, err := svc.CreateService(ctx, category.ID, "monthly pass", "30 days", 500000, 30, 0)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if !offering.IsActive {
		t.Error("new service must be active")
	}

	inactive := false
	updated, err := svc.UpdateService(ctx, offering.ID, ServiceUpdate{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive {
		t.Error("expected deactivated service")
	}

	// The public listing hides inactive services
	visible, total, err := svc.ListServices(ctx, nil, false, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || len(visible) != 0 {
		t.Errorf("expected no visible services, got %d (%d total)", len(visible), total)
	}

	everything, total, err := svc.ListServices(ctx, nil, true, 10, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 1 || len(everything) != 1 {
		t.Errorf("expected one service including inactive, got %d (%d total)", len(everything), total)
	}
}

func TestCatalogService_ListServicesByCategory(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	memberships, _ := svc.CreateCategory(ctx, "memberships", "")
	classes, _ := svc.CreateCategory(ctx, "classes", "")

	if _, err := svc.CreateService(ctx, memberships.ID, "monthly pass", "", 500000, 30, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateService(ctx, classes.ID, "yoga pack", "", 200000, 0, 10); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, total, err := svc.ListServices(ctx, &classes.ID, false, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || got[0].Name != "yoga pack" {
		t.Errorf("expected the class pack only, got %v (%d total)", got, total)
	}
}
