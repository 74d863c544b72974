package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// MessageRepository persists direct messages between members.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *MessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// Inbox lists messages received by the user, newest first.
func (r *MessageRepository) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, skip int) ([]domain.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Message{}).Where("recipient_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	return r.page(q, limit, skip)
}

// Sent lists messages sent by the user, newest first.
func (r *MessageRepository) Sent(ctx context.Context, userID uuid.UUID, limit, skip int) ([]domain.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Message{}).Where("sender_id = ?", userID)
	return r.page(q, limit, skip)
}

// Thread lists a root message plus all its replies, oldest first.
func (r *MessageRepository) Thread(ctx context.Context, rootID uuid.UUID) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("id = ? OR parent_id = ?", rootID, rootID).
		Order("created_at").Find(&msgs).Error
	return msgs, err
}

// MarkRead flags a received message as read. Only the recipient's rows match.
func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).Count(&n).Error
	return n, err
}

func (r *MessageRepository) page(q *gorm.DB, limit, skip int) ([]domain.Message, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var msgs []domain.Message
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}
