package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// TicketRepository persists support tickets and their response threads.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *TicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := r.db.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *TicketRepository) AddResponse(ctx context.Context, response *domain.TicketResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID uuid.UUID, status domain.TicketStatus, limit, skip int) ([]domain.Ticket, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ticket{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(q, limit, skip)
}

// List returns all tickets for support staff, optionally filtered.
func (r *TicketRepository) List(ctx context.Context, status domain.TicketStatus, assigneeID *uuid.UUID, limit, skip int) ([]domain.Ticket, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ticket{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if assigneeID != nil {
		q = q.Where("assignee_id = ?", *assigneeID)
	}
	return r.page(q, limit, skip)
}

func (r *TicketRepository) page(q *gorm.DB, limit, skip int) ([]domain.Ticket, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tickets []domain.Ticket
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
