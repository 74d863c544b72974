package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// setupServiceDB creates an in-memory SQLite database with the full schema
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{}, &domain.Role{}, &domain.Permission{},
		&domain.Profile{}, &domain.ProfilePhoto{},
		&domain.Coach{}, &domain.CoachRelation{}, &domain.Program{},
		&domain.ServiceCategory{}, &domain.Service{}, &domain.Purchase{},
		&domain.Ticket{}, &domain.TicketResponse{}, &domain.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func seedService(t *testing.T, db *gorm.DB, price int64, active bool) *domain.Service {
	t.Helper()

	category := &domain.ServiceCategory{Name: "memberships-" + uuid.NewString()[:8]}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	svc := &domain.Service{
		CategoryID:   category.ID,
		Name:         "monthly pass",
		Price:        price,
		DurationDays: 30,
		IsActive:     active,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return svc
}

func newPurchaseService(db *gorm.DB) *PurchaseService {
	return NewPurchaseService(repositories.NewPurchaseRepository(db), repositories.NewCatalogRepository(db))
}

func TestPurchaseService_Create(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := newPurchaseService(db)

	offering := seedService(t, db, 500000, true)
	userID := uuid.New()

	purchase, err := svc.Create(ctx, userID, offering.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if purchase.Status != domain.PurchasePending {
		t.Errorf("expected pending, got %s", purchase.Status)
	}
	if purchase.Amount != 500000 {
		t.Errorf("expected price snapshot 500000, got %d", purchase.Amount)
	}
	if !strings.HasPrefix(purchase.Reference, "pay_") {
		t.Errorf("expected payment reference, got %q", purchase.Reference)
	}

	// Later price changes must not touch the snapshot
	db.Model(offering).Update("price", 999999)
	reread, err := svc.Get(ctx, purchase.ID, userID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.Amount != 500000 {
		t.Errorf("snapshot drifted to %d", reread.Amount)
	}
}

func TestPurchaseService_Create_InactiveService(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := newPurchaseService(db)

	offering := seedService(t, db, 100, false)

	if _, err := svc.Create(ctx, uuid.New(), offering.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for inactive service, got %v", err)
	}
}

func TestPurchaseService_StateMachine(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := newPurchaseService(db)

	offering := seedService(t, db, 100, true)
	owner := uuid.New()

	t.Run("pay then refund", func(t *testing.T) {
		purchase, err := svc.Create(ctx, owner, offering.ID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		paid, err := svc.Pay(ctx, purchase.ID, owner)
		if err != nil {
			t.Fatalf("pay: %v", err)
		}
		if paid.Status != domain.PurchasePaid || paid.PaidAt == nil {
			t.Errorf("expected paid with timestamp, got %+v", paid)
		}

		// Paying twice is a conflict
		if _, err := svc.Pay(ctx, purchase.ID, owner); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict on double pay, got %v", err)
		}

		// A paid purchase cannot be cancelled
		if _, err := svc.Cancel(ctx, purchase.ID, owner); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict cancelling paid, got %v", err)
		}

		refunded, err := svc.Refund(ctx, purchase.ID)
		if err != nil {
			t.Fatalf("refund: %v", err)
		}
		if refunded.Status != domain.PurchaseRefunded {
			t.Errorf("expected refunded, got %s", refunded.Status)
		}
	})

	t.Run("cancel pending", func(t *testing.T) {
		purchase, err := svc.Create(ctx, owner, offering.ID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		cancelled, err := svc.Cancel(ctx, purchase.ID, owner)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if cancelled.Status != domain.PurchaseCancelled {
			t.Errorf("expected cancelled, got %s", cancelled.Status)
		}

		// A cancelled purchase cannot be refunded
		if _, err := svc.Refund(ctx, purchase.ID); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict refunding cancelled, got %v", err)
		}
	})

	t.Run("refund requires paid", func(t *testing.T) {
		purchase, err := svc.Create(ctx, owner, offering.ID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := svc.Refund(ctx, purchase.ID); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict refunding pending, got %v", err)
		}
	})
}

func TestPurchaseService_Ownership(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := newPurchaseService(db)

	offering := seedService(t, db, 100, true)
	owner := uuid.New()
	stranger := uuid.New()

	purchase, err := svc.Create(ctx, owner, offering.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Pay(ctx, purchase.ID, stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden paying someone else's purchase, got %v", err)
	}
	if _, err := svc.Get(ctx, purchase.ID, stranger, false); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden reading someone else's purchase, got %v", err)
	}
	if _, err := svc.Get(ctx, purchase.ID, stranger, true); err != nil {
		t.Errorf("staff read must pass, got %v", err)
	}
}

func TestPurchaseService_ListMine(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := newPurchaseService(db)

	offering := seedService(t, db, 100, true)
	owner := uuid.New()
	other := uuid.New()

	first, _ := svc.Create(ctx, owner, offering.ID)
	if _, err := svc.Pay(ctx, first.ID, owner); err != nil {
		t.Fatalf("pay: %v", err)
	}
	svc.Create(ctx, owner, offering.ID)
	svc.Create(ctx, other, offering.ID)

	all, total, err := svc.ListMine(ctx, owner, "", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("expected 2 own purchases, got %d (%d total)", len(all), total)
	}

	paid, total, err := svc.ListMine(ctx, owner, domain.PurchasePaid, 10, 0)
	if err != nil {
		t.Fatalf("list paid: %v", err)
	}
	if total != 1 || paid[0].ID != first.ID {
		t.Errorf("expected only the paid purchase, got %v (%d total)", paid, total)
	}
}
