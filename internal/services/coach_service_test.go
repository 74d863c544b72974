package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
	"github.com/dj-idk/gym-backend/internal/mocks"
)

func newCoachService(t *testing.T) *CoachService {
	t.Helper()

	db := setupServiceDB(t)
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: id, Phone: "09123456789", IsActive: true, IsVerified: true}, nil
	}
	return NewCoachService(repositories.NewCoachRepository(db), userRepo, mocks.NewMockRoleRepository())
}

func TestCoachService_Promote(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t)
	userID := uuid.New()

	coach, err := svc.Promote(ctx, userID, "powerlifting", "10 years of coaching", 10)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if coach.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, coach.UserID)
	}
	if !coach.IsActive {
		t.Error("new coach must be active")
	}

	// Promoting twice is a conflict
	if _, err := svc.Promote(ctx, userID, "crossfit", "", 1); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCoachService_Engage(t *testing.T) {
	ctx := context.Background()
	client := uuid.New()

	t.Run("opens a bounded relation", func(t *testing.T) {
		svc := newCoachService(t)
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)

		rel, err := svc.Engage(ctx, coach.ID, client, 30)
		if err != nil {
			t.Fatalf("engage: %v", err)
		}
		if rel.Status != domain.RelationActive {
			t.Errorf("expected active relation, got %s", rel.Status)
		}
		want := time.Now().AddDate(0, 0, 30)
		if rel.EndsAt.Before(want.Add(-time.Minute)) || rel.EndsAt.After(want.Add(time.Minute)) {
			t.Errorf("expected end around %v, got %v", want, rel.EndsAt)
		}
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		svc := newCoachService(t)
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)

		if _, err := svc.Engage(ctx, coach.ID, client, 0); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("one active engagement per pair", func(t *testing.T) {
		svc := newCoachService(t)
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)

		if _, err := svc.Engage(ctx, coach.ID, client, 30); err != nil {
			t.Fatalf("engage: %v", err)
		}
		if _, err := svc.Engage(ctx, coach.ID, client, 30); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict for second engagement, got %v", err)
		}
	})
}

func TestCoachService_Terminate(t *testing.T) {
	ctx := context.Background()

	t.Run("client may terminate", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		if err := svc.Terminate(ctx, rel.ID, client); err != nil {
			t.Fatalf("terminate: %v", err)
		}

		// The pair can engage again afterwards
		if _, err := svc.Engage(ctx, coach.ID, client, 30); err != nil {
			t.Errorf("expected re-engagement after termination, got %v", err)
		}
	})

	t.Run("outsiders may not", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		if err := svc.Terminate(ctx, rel.ID, uuid.New()); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("terminating twice is a conflict", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		if err := svc.Terminate(ctx, rel.ID, client); err != nil {
			t.Fatalf("terminate: %v", err)
		}
		if err := svc.Terminate(ctx, rel.ID, client); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestCoachService_CreateProgram(t *testing.T) {
	ctx := context.Background()

	t.Run("unassigned program stays a draft", func(t *testing.T) {
		svc := newCoachService(t)
		coachUser := uuid.New()
		svc.Promote(ctx, coachUser, "powerlifting", "", 5)

		program, err := svc.CreateProgram(ctx, coachUser, nil, "5x5 base", "linear progression")
		if err != nil {
			t.Fatalf("create program: %v", err)
		}
		if program.Status != domain.ProgramDraft {
			t.Errorf("expected draft, got %s", program.Status)
		}
	})

	t.Run("assignment requires an active engagement", func(t *testing.T) {
		svc := newCoachService(t)
		coachUser := uuid.New()
		coach, _ := svc.Promote(ctx, coachUser, "powerlifting", "", 5)
		client := uuid.New()

		if _, err := svc.CreateProgram(ctx, coachUser, &client, "5x5", ""); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden without engagement, got %v", err)
		}

		if _, err := svc.Engage(ctx, coach.ID, client, 30); err != nil {
			t.Fatalf("engage: %v", err)
		}
		program, err := svc.CreateProgram(ctx, coachUser, &client, "5x5", "")
		if err != nil {
			t.Fatalf("create program: %v", err)
		}
		if program.Status != domain.ProgramActive {
			t.Errorf("expected active program, got %s", program.Status)
		}
	})

	t.Run("only coaches author programs", func(t *testing.T) {
		svc := newCoachService(t)

		if _, err := svc.CreateProgram(ctx, uuid.New(), nil, "5x5", ""); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-coach, got %v", err)
		}
	})
}

func TestCoachService_ArchiveProgram(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t)

	author := uuid.New()
	svc.Promote(ctx, author, "powerlifting", "", 5)
	other := uuid.New()
	svc.Promote(ctx, other, "crossfit", "", 3)

	program, err := svc.CreateProgram(ctx, author, nil, "5x5", "")
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	if err := svc.ArchiveProgram(ctx, program.ID, other); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for other coach, got %v", err)
	}

	if err := svc.ArchiveProgram(ctx, program.ID, author); err != nil {
		t.Fatalf("archive: %v", err)
	}
}

func TestCoachService_List(t *testing.T) {
	ctx := context.Background()
	svc := newCoachService(t)

	svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
	svc.Promote(ctx, uuid.New(), "crossfit", "", 3)

	all, total, err := svc.List(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("expected 2 coaches, got %d (%d total)", len(all), total)
	}

	lifters, total, err := svc.List(ctx, "powerlifting", 10, 0)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if total != 1 || lifters[0].Specialization != "powerlifting" {
		t.Errorf("expected one powerlifting coach, got %v (%d total)", lifters, total)
	}
}

func TestCoachService_Extend(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes the end date out", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		extended, err := svc.Extend(ctx, rel.ID, client, 15)
		if err != nil {
			t.Fatalf("extend: %v", err)
		}
		want := rel.EndsAt.AddDate(0, 0, 15)
		if extended.EndsAt.Before(want.Add(-time.Minute)) || extended.EndsAt.After(want.Add(time.Minute)) {
			t.Errorf("expected end around %v, got %v", want, extended.EndsAt)
		}
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		if _, err := svc.Extend(ctx, rel.ID, client, 0); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("outsiders may not", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		if _, err := svc.Extend(ctx, rel.ID, uuid.New(), 15); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("terminated relations stay terminated", func(t *testing.T) {
		svc := newCoachService(t)
		client := uuid.New()
		coach, _ := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5)
		rel, _ := svc.Engage(ctx, coach.ID, client, 30)

		if err := svc.Terminate(ctx, rel.ID, client); err != nil {
			t.Fatalf("terminate: %v", err)
		}
		if _, err := svc.Extend(ctx, rel.ID, client, 15); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestCoachService_UpdateProgram(t *testing.T) {
	ctx := context.Background()

	t.Run("author edits the text", func(t *testing.T) {
		svc := newCoachService(t)
		authorUser := uuid.New()
		svc.Promote(ctx, authorUser, "powerlifting", "", 5)
		program, _ := svc.CreateProgram(ctx, authorUser, nil, "5x5 base", "weeks 1-4")

		updated, err := svc.UpdateProgram(ctx, program.ID, authorUser, "5x5 base v2", "weeks 1-6")
		if err != nil {
			t.Fatalf("update program: %v", err)
		}
		if updated.Title != "5x5 base v2" || updated.Description != "weeks 1-6" {
			t.Errorf("unexpected program text: %q / %q", updated.Title, updated.Description)
		}
	})

	t.Run("other coaches may not", func(t *testing.T) {
		svc := newCoachService(t)
		authorUser := uuid.New()
		otherUser := uuid.New()
		svc.Promote(ctx, authorUser, "powerlifting", "", 5)
		svc.Promote(ctx, otherUser, "crossfit", "", 3)
		program, _ := svc.CreateProgram(ctx, authorUser, nil, "5x5 base", "")

		if _, err := svc.UpdateProgram(ctx, program.ID, otherUser, "stolen", ""); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("archived plans are read only", func(t *testing.T) {
		svc := newCoachService(t)
		authorUser := uuid.New()
		svc.Promote(ctx, authorUser, "powerlifting", "", 5)
		program, _ := svc.CreateProgram(ctx, authorUser, nil, "5x5 base", "")

		if err := svc.ArchiveProgram(ctx, program.ID, authorUser); err != nil {
			t.Fatalf("archive: %v", err)
		}
		if _, err := svc.UpdateProgram(ctx, program.ID, authorUser, "revived", ""); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("title stays required", func(t *testing.T) {
		svc := newCoachService(t)
		authorUser := uuid.New()
		svc.Promote(ctx, authorUser, "powerlifting", "", 5)
		program, _ := svc.CreateProgram(ctx, authorUser, nil, "5x5 base", "")

		if _, err := svc.UpdateProgram(ctx, program.ID, authorUser, "", ""); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestCoachService_List_SkipsCoachesStoredInactive(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	svc := NewCoachService(repositories.NewCoachRepository(db), mocks.NewMockUserRepository(), mocks.NewMockRoleRepository())

	if _, err := svc.Promote(ctx, uuid.New(), "powerlifting", "", 5); err != nil {
		t.Fatalf("promote: %v", err)
	}
	retired := &domain.Coach{UserID: uuid.New(), Specialization: "pilates", IsActive: false}
	if err := db.Create(retired).Error; err != nil {
		t.Fatalf("seed retired coach: %v", err)
	}

	// The false flag must survive the insert
	var stored domain.Coach
	if err := db.First(&stored, "id = ?", retired.ID).Error; err != nil {
		t.Fatalf("reload coach: %v", err)
	}
	if stored.IsActive {
		t.Fatal("coach created inactive came back active")
	}

	coaches, total, err := svc.List(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(coaches) != 1 || coaches[0].Specialization != "powerlifting" {
		t.Errorf("expected only the active coach, got %v (%d total)", coaches, total)
	}
}
