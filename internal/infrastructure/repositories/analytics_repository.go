package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// AnalyticsRepository answers aggregate queries for the admin dashboard.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) TotalUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) VerifiedUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("is_verified = ?", true).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) NewUsersSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) ActiveCoaches(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Coach{}).
		Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) ActiveRelations(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CoachRelation{}).
		Where("status = ?", domain.RelationActive).Count(&n).Error
	return n, err
}

func (r *AnalyticsRepository) TicketsByStatus(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	type row struct {
		Status domain.TicketStatus
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Ticket{}).
		Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.TicketStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
