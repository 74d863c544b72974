package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

func newAnalyticsService(db *gorm.DB) *AnalyticsService {
	return NewAnalyticsService(repositories.NewAnalyticsRepository(db), repositories.NewPurchaseRepository(db))
}

// paidPurchase walks a fresh purchase through payment and returns it.
func paidPurchase(t *testing.T, db *gorm.DB, svcID uuid.UUID) *domain.Purchase {
	t.Helper()

	owner := uuid.New()
	purchases := newPurchaseService(db)
	p, err := purchases.Create(context.Background(), owner, svcID)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if _, err := purchases.Pay(context.Background(), p.ID, owner); err != nil {
		t.Fatalf("pay purchase: %v", err)
	}
	return p
}

func TestAnalyticsService_Revenue(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	gymSvc := seedService(t, db, 500000, true)
	purchases := newPurchaseService(db)

	paidPurchase(t, db, gymSvc.ID)
	paidPurchase(t, db, gymSvc.ID)
	refundMe := paidPurchase(t, db, gymSvc.ID)
	if _, err := purchases.Refund(ctx, refundMe.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	// A pending purchase never counts
	if _, err := purchases.Create(ctx, uuid.New(), gymSvc.ID); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	report, err := newAnalyticsService(db).Revenue(ctx, from, to)
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}

	if report.Revenue != 1000000 {
		t.Errorf("expected revenue 1000000, got %d", report.Revenue)
	}
	if report.Orders != 2 {
		t.Errorf("expected 2 orders, got %d", report.Orders)
	}
	if report.AverageOrderValue != 500000 {
		t.Errorf("expected AOV 500000, got %d", report.AverageOrderValue)
	}
	if report.Refunds != 1 {
		t.Errorf("expected 1 refund, got %d", report.Refunds)
	}
	if want := 1.0 / 3.0; report.RefundRate != want {
		t.Errorf("expected refund rate %f, got %f", want, report.RefundRate)
	}
}

func TestAnalyticsService_Revenue_EmptyPeriod(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)

	report, err := newAnalyticsService(db).Revenue(ctx, time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if report.Revenue != 0 || report.Orders != 0 || report.AverageOrderValue != 0 || report.RefundRate != 0 {
		t.Errorf("expected zeroed report, got %+v", report)
	}
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)

	users := []domain.User{
		{Phone: "09120000001", PasswordHash: "x", IsVerified: true, Status: domain.StatusActive},
		{Phone: "09120000002", PasswordHash: "x", IsVerified: true, Status: domain.StatusActive},
		{Phone: "09120000003", PasswordHash: "x", Status: domain.StatusPendingVerification},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	gymSvc := seedService(t, db, 250000, true)
	paidPurchase(t, db, gymSvc.ID)

	tickets := NewTicketService(repositories.NewTicketRepository(db), nil)
	if _, err := tickets.Open(ctx, users[0].ID, "billing question", "", "billing", ""); err != nil {
		t.Fatalf("open ticket: %v", err)
	}

	stats, err := newAnalyticsService(db).Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if stats.TotalUsers != 3 {
		t.Errorf("expected 3 users, got %d", stats.TotalUsers)
	}
	if stats.VerifiedUsers != 2 {
		t.Errorf("expected 2 verified users, got %d", stats.VerifiedUsers)
	}
	if stats.NewUsers30d != 3 {
		t.Errorf("expected 3 new users, got %d", stats.NewUsers30d)
	}
	if stats.Revenue30d != 250000 {
		t.Errorf("expected revenue 250000, got %d", stats.Revenue30d)
	}
	if stats.Purchases[domain.PurchasePaid] != 1 {
		t.Errorf("expected 1 paid purchase, got %d", stats.Purchases[domain.PurchasePaid])
	}
	if stats.Tickets[domain.TicketOpen] != 1 {
		t.Errorf("expected 1 open ticket, got %d", stats.Tickets[domain.TicketOpen])
	}
}
