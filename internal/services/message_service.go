package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// MessageService handles direct messaging between members.
type MessageService struct {
	messages *repositories.MessageRepository
	userRepo domain.UserRepository
}

func NewMessageService(messages *repositories.MessageRepository, userRepo domain.UserRepository) *MessageService {
	return &MessageService{messages: messages, userRepo: userRepo}
}

// Send delivers a message. Replies inherit the root of the thread they
// answer, so threads stay one level deep.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, parentID *uuid.UUID, subject, body string) (*domain.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", domain.ErrConflict)
	}
	if senderID == recipientID {
		return nil, fmt.Errorf("%w: cannot message yourself", domain.ErrConflict)
	}
	if _, err := s.userRepo.FindByID(ctx, recipientID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.messages.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.SenderID != senderID && parent.RecipientID != senderID {
			return nil, domain.ErrForbidden
		}
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	msg := &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		ParentID:    parentID,
		Subject:     subject,
		Body:        body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, skip int) ([]domain.Message, int64, error) {
	return s.messages.Inbox(ctx, userID, unreadOnly, limit, skip)
}

func (s *MessageService) Sent(ctx context.Context, userID uuid.UUID, limit, skip int) ([]domain.Message, int64, error) {
	return s.messages.Sent(ctx, userID, limit, skip)
}

// Thread returns a conversation. Only its participants may read it.
func (s *MessageService) Thread(ctx context.Context, rootID, userID uuid.UUID) ([]domain.Message, error) {
	root, err := s.messages.FindByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root.SenderID != userID && root.RecipientID != userID {
		return nil, domain.ErrForbidden
	}
	return s.messages.Thread(ctx, rootID)
}

// MarkRead flags a received message. Recipient only.
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID uuid.UUID) error {
	return s.messages.MarkRead(ctx, messageID, userID)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.messages.UnreadCount(ctx, userID)
}
