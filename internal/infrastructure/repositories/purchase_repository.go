package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// PurchaseRepository persists purchases and answers revenue queries.
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *PurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Purchase, error) {
	var purchase domain.Purchase
	err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) Update(ctx context.Context, purchase *domain.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID, status domain.PurchaseStatus, limit, skip int) ([]domain.Purchase, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Purchase{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var purchases []domain.Purchase
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

func (r *PurchaseRepository) List(ctx context.Context, status domain.PurchaseStatus, limit, skip int) ([]domain.Purchase, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Purchase{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var purchases []domain.Purchase
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// Revenue sums paid purchases in the half-open interval [from, to).
func (r *PurchaseRepository) Revenue(ctx context.Context, from, to time.Time) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", domain.PurchasePaid, from, to).
		Select("SUM(amount)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// SettledCounts counts purchases that went through payment inside
// [from, to), split by whether they still stand or were refunded.
// Refunds keep their paid_at stamp, so both land in the paid period.
func (r *PurchaseRepository) SettledCounts(ctx context.Context, from, to time.Time) (paid, refunded int64, err error) {
	err = r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", domain.PurchasePaid, from, to).
		Count(&paid).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", domain.PurchaseRefunded, from, to).
		Count(&refunded).Error
	if err != nil {
		return 0, 0, err
	}
	return paid, refunded, nil
}

// CountByStatus returns the number of purchases per status.
func (r *PurchaseRepository) CountByStatus(ctx context.Context) (map[domain.PurchaseStatus]int64, error) {
	type row struct {
		Status domain.PurchaseStatus
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.PurchaseStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
