package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
	"github.com/dj-idk/gym-backend/internal/mocks"
)

func newMessageService(t *testing.T) *MessageService {
	t.Helper()

	db := setupServiceDB(t)
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: id, Phone: "09123456789", IsActive: true}, nil
	}
	return NewMessageService(repositories.NewMessageRepository(db), userRepo)
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	t.Run("delivers unread", func(t *testing.T) {
		svc := newMessageService(t)

		msg, err := svc.Send(ctx, alice, bob, nil, "hi", "see you at the gym")
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if msg.IsRead {
			t.Error("new message must be unread")
		}

		count, err := svc.UnreadCount(ctx, bob)
		if err != nil {
			t.Fatalf("unread count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 unread, got %d", count)
		}
	})

	t.Run("no self messaging", func(t *testing.T) {
		svc := newMessageService(t)
		if _, err := svc.Send(ctx, alice, alice, nil, "", "talking to myself"); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		svc := newMessageService(t)
		if _, err := svc.Send(ctx, alice, bob, nil, "subject", ""); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestMessageService_Threads(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()
	eve := uuid.New()

	svc := newMessageService(t)

	root, err := svc.Send(ctx, alice, bob, nil, "plan", "leg day tomorrow?")
	if err != nil {
		t.Fatalf("send root: %v", err)
	}
	reply, err := svc.Send(ctx, bob, alice, &root.ID, "", "sure")
	if err != nil {
		t.Fatalf("send reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != root.ID {
		t.Errorf("reply must point at the root, got %v", reply.ParentID)
	}

	// A reply to the reply still lands under the root
	nested, err := svc.Send(ctx, alice, bob, &reply.ID, "", "bring straps")
	if err != nil {
		t.Fatalf("send nested: %v", err)
	}
	if nested.ParentID == nil || *nested.ParentID != root.ID {
		t.Errorf("nested reply must be re-rooted, got %v", nested.ParentID)
	}

	thread, err := svc.Thread(ctx, root.ID, alice)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(thread) != 3 {
		t.Errorf("expected 3 messages in thread, got %d", len(thread))
	}
	if thread[0].ID != root.ID {
		t.Error("thread must start with the root")
	}

	// Outsiders cannot read or join the thread
	if _, err := svc.Thread(ctx, root.ID, eve); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := svc.Send(ctx, eve, bob, &root.ID, "", "heard you"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsider reply, got %v", err)
	}
}

func TestMessageService_MarkRead(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	svc := newMessageService(t)

	msg, err := svc.Send(ctx, alice, bob, nil, "", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	// Only the recipient may mark it
	if err := svc.MarkRead(ctx, msg.ID, alice); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for sender, got %v", err)
	}

	if err := svc.MarkRead(ctx, msg.ID, bob); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	count, err := svc.UnreadCount(ctx, bob)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}

	unread, _, err := svc.Inbox(ctx, bob, true, 10, 0)
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected empty unread inbox, got %d", len(unread))
	}
}
