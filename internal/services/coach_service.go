package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// CoachService manages coach profiles, client engagements and training
// programs.
type CoachService struct {
	coaches  *repositories.CoachRepository
	userRepo domain.UserRepository
	roleRepo domain.RoleRepository
}

func NewCoachService(coaches *repositories.CoachRepository, userRepo domain.UserRepository, roleRepo domain.RoleRepository) *CoachService {
	return &CoachService{
		coaches:  coaches,
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// Promote turns an account into a coach: creates the coach record and
// grants the coach role. Admin only.
func (s *CoachService) Promote(ctx context.Context, userID uuid.UUID, specialization, bio string, experienceYears int) (*domain.Coach, error) {
	if _, err := s.coaches.FindByUserID(ctx, userID); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	coach := &domain.Coach{
		UserID:         userID,
		Specialization: specialization,
		Bio:            bio,
		ExperienceYrs:  experienceYears,
		IsActive:       true,
	}
	if err := s.coaches.Create(ctx, coach); err != nil {
		return nil, err
	}

	role, err := s.roleRepo.FindByName(ctx, "coach")
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.AssignRole(ctx, userID, role); err != nil {
		return nil, err
	}

	return coach, nil
}

func (s *CoachService) Get(ctx context.Context, coachID uuid.UUID) (*domain.Coach, error) {
	return s.coaches.FindByID(ctx, coachID)
}

func (s *CoachService) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Coach, error) {
	return s.coaches.FindByUserID(ctx, userID)
}

func (s *CoachService) List(ctx context.Context, specialization string, limit, skip int) ([]domain.Coach, int64, error) {
	return s.coaches.List(ctx, specialization, limit, skip)
}

// UpdateProfile lets the coach edit their own public card.
func (s *CoachService) UpdateProfile(ctx context.Context, userID uuid.UUID, specialization, bio string, experienceYears int) (*domain.Coach, error) {
	coach, err := s.coaches.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	coach.Specialization = specialization
	coach.Bio = bio
	coach.ExperienceYrs = experienceYears
	if err := s.coaches.Update(ctx, coach); err != nil {
		return nil, err
	}
	return coach, nil
}

// Engage opens an active relation between a coach and a client for the
// given number of days. A second active engagement with the same pair
// is a conflict.
func (s *CoachService) Engage(ctx context.Context, coachID, clientID uuid.UUID, days int) (*domain.CoachRelation, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: engagement length must be positive", domain.ErrConflict)
	}

	coach, err := s.coaches.FindByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if !coach.IsActive {
		return nil, domain.ErrConflict
	}
	if _, err := s.userRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	if _, err := s.coaches.ActiveRelation(ctx, coachID, clientID); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	rel := &domain.CoachRelation{
		CoachID:  coachID,
		ClientID: clientID,
		Status:   domain.RelationActive,
		StartsAt: now,
		EndsAt:   now.AddDate(0, 0, days),
	}
	if err := s.coaches.CreateRelation(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

// Terminate closes an engagement early. Only the coach or the client of
// the relation may do it.
func (s *CoachService) Terminate(ctx context.Context, relationID, actorUserID uuid.UUID) error {
	rel, err := s.coaches.FindRelation(ctx, relationID)
	if err != nil {
		return err
	}
	if rel.Status != domain.RelationActive {
		return domain.ErrConflict
	}

	coach, err := s.coaches.FindByID(ctx, rel.CoachID)
	if err != nil {
		return err
	}
	if actorUserID != coach.UserID && actorUserID != rel.ClientID {
		return domain.ErrForbidden
	}

	rel.Status = domain.RelationTerminated
	rel.EndsAt = time.Now()
	return s.coaches.UpdateRelation(ctx, rel)
}

// Extend pushes an active engagement's end date out by the given number
// of days. Only the coach or the client of the relation may do it.
func (s *CoachService) Extend(ctx context.Context, relationID, actorUserID uuid.UUID, days int) (*domain.CoachRelation, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: extension length must be positive", domain.ErrConflict)
	}
	rel, err := s.coaches.FindRelation(ctx, relationID)
	if err != nil {
		return nil, err
	}
	if rel.Status != domain.RelationActive {
		return nil, domain.ErrConflict
	}

	coach, err := s.coaches.FindByID(ctx, rel.CoachID)
	if err != nil {
		return nil, err
	}
	if actorUserID != coach.UserID && actorUserID != rel.ClientID {
		return nil, domain.ErrForbidden
	}

	rel.EndsAt = rel.EndsAt.AddDate(0, 0, days)
	if err := s.coaches.UpdateRelation(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *CoachService) ClientsOf(ctx context.Context, coachID uuid.UUID, limit, skip int) ([]domain.CoachRelation, int64, error) {
	return s.coaches.ListRelationsByCoach(ctx, coachID, limit, skip)
}

func (s *CoachService) CoachesOf(ctx context.Context, clientID uuid.UUID, limit, skip int) ([]domain.CoachRelation, int64, error) {
	return s.coaches.ListRelationsByClient(ctx, clientID, limit, skip)
}

// CreateProgram authors a training plan. A client may only be assigned
// while an active engagement with them exists.
func (s *CoachService) CreateProgram(ctx context.Context, coachUserID uuid.UUID, clientID *uuid.UUID, title, description string) (*domain.Program, error) {
	coach, err := s.coaches.FindByUserID(ctx, coachUserID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: program title is required", domain.ErrConflict)
	}

	status := domain.ProgramDraft
	if clientID != nil {
		if _, err := s.coaches.ActiveRelation(ctx, coach.ID, *clientID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrForbidden
			}
			return nil, err
		}
		status = domain.ProgramActive
	}

	program := &domain.Program{
		CoachID:     coach.ID,
		ClientID:    clientID,
		Title:       title,
		Description: description,
		Status:      status,
	}
	if err := s.coaches.CreateProgram(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// ArchiveProgram retires a plan. Only its author may do it.
func (s *CoachService) ArchiveProgram(ctx context.Context, programID, coachUserID uuid.UUID) error {
	program, err := s.coaches.FindProgram(ctx, programID)
	if err != nil {
		return err
	}
	coach, err := s.coaches.FindByUserID(ctx, coachUserID)
	if err != nil {
		return err
	}
	if program.CoachID != coach.ID {
		return domain.ErrForbidden
	}
	program.Status = domain.ProgramArchived
	return s.coaches.UpdateProgram(ctx, program)
}

// UpdateProgram edits a plan's text. Its author only; archived plans
// are read only.
func (s *CoachService) UpdateProgram(ctx context.Context, programID, coachUserID uuid.UUID, title, description string) (*domain.Program, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: program title is required", domain.ErrConflict)
	}
	program, err := s.coaches.FindProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	coach, err := s.coaches.FindByUserID(ctx, coachUserID)
	if err != nil {
		return nil, err
	}
	if program.CoachID != coach.ID {
		return nil, domain.ErrForbidden
	}
	if program.Status == domain.ProgramArchived {
		return nil, domain.ErrConflict
	}

	program.Title = title
	program.Description = description
	if err := s.coaches.UpdateProgram(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *CoachService) ProgramsOfCoach(ctx context.Context, coachID uuid.UUID, limit, skip int) ([]domain.Program, int64, error) {
	return s.coaches.ListProgramsByCoach(ctx, coachID, limit, skip)
}

func (s *CoachService) ProgramsOfClient(ctx context.Context, clientID uuid.UUID, limit, skip int) ([]domain.Program, int64, error) {
	return s.coaches.ListProgramsByClient(ctx, clientID, limit, skip)
}
