package services

import (
	"context"
	"time"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// DashboardStats is the admin overview snapshot.
type DashboardStats struct {
	TotalUsers      int64                           `json:"total_users"`
	VerifiedUsers   int64                           `json:"verified_users"`
	NewUsers30d     int64                           `json:"new_users_30d"`
	ActiveCoaches   int64                           `json:"active_coaches"`
	ActiveRelations int64                           `json:"active_relations"`
	Revenue30d      int64                           `json:"revenue_30d"`
	Purchases       map[domain.PurchaseStatus]int64 `json:"purchases"`
	Tickets         map[domain.TicketStatus]int64   `json:"tickets"`
}

// AnalyticsService assembles aggregate reporting for administrators.
type AnalyticsService struct {
	analytics *repositories.AnalyticsRepository
	purchases *repositories.PurchaseRepository
}

func NewAnalyticsService(analytics *repositories.AnalyticsRepository, purchases *repositories.PurchaseRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, purchases: purchases}
}

// Dashboard gathers the overview counters. Queries run sequentially;
// the dashboard is low traffic.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	monthAgo := now.AddDate(0, 0, -30)

	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.analytics.TotalUsers(ctx); err != nil {
		return nil, err
	}
	if stats.VerifiedUsers, err = s.analytics.VerifiedUsers(ctx); err != nil {
		return nil, err
	}
	if stats.NewUsers30d, err = s.analytics.NewUsersSince(ctx, monthAgo); err != nil {
		return nil, err
	}
	if stats.ActiveCoaches, err = s.analytics.ActiveCoaches(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveRelations, err = s.analytics.ActiveRelations(ctx); err != nil {
		return nil, err
	}
	if stats.Revenue30d, err = s.purchases.Revenue(ctx, monthAgo, now); err != nil {
		return nil, err
	}
	if stats.Purchases, err = s.purchases.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.Tickets, err = s.analytics.TicketsByStatus(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// RevenueReport summarizes settled purchases for a period.
type RevenueReport struct {
	Revenue           int64   `json:"revenue"`
	Orders            int64   `json:"orders"`
	AverageOrderValue int64   `json:"average_order_value"`
	Refunds           int64   `json:"refunds"`
	RefundRate        float64 `json:"refund_rate"`
}

// Revenue reports paid volume, order value and refund rate inside
// [from, to).
func (s *AnalyticsService) Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	total, err := s.purchases.Revenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	paid, refunded, err := s.purchases.SettledCounts(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &RevenueReport{Revenue: total, Orders: paid, Refunds: refunded}
	if paid > 0 {
		report.AverageOrderValue = total / paid
	}
	if paid+refunded > 0 {
		report.RefundRate = float64(refunded) / float64(paid+refunded)
	}
	return report, nil
}
