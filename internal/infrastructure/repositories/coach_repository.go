package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// CoachRepository persists coaches, their client relations and programs.
type CoachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) Create(ctx context.Context, coach *domain.Coach) error {
	return r.db.WithContext(ctx).Create(coach).Error
}

func (r *CoachRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.db.WithContext(ctx).First(&coach, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.db.WithContext(ctx).First(&coach, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

func (r *CoachRepository) Update(ctx context.Context, coach *domain.Coach) error {
	return r.db.WithContext(ctx).Save(coach).Error
}

// List returns active coaches, optionally filtered by specialization.
func (r *CoachRepository) List(ctx context.Context, specialization string, limit, skip int) ([]domain.Coach, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Coach{}).Where("is_active = ?", true)
	if specialization != "" {
		q = q.Where("specialization = ?", specialization)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var coaches []domain.Coach
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&coaches).Error; err != nil {
		return nil, 0, err
	}
	return coaches, total, nil
}

func (r *CoachRepository) CreateRelation(ctx context.Context, rel *domain.CoachRelation) error {
	return r.db.WithContext(ctx).Create(rel).Error
}

func (r *CoachRepository) FindRelation(ctx context.Context, id uuid.UUID) (*domain.CoachRelation, error) {
	var rel domain.CoachRelation
	err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rel, nil
}

// ActiveRelation returns the current active engagement between a coach and a
// client, or ErrNotFound when none exists.
func (r *CoachRepository) ActiveRelation(ctx context.Context, coachID, clientID uuid.UUID) (*domain.CoachRelation, error) {
	var rel domain.CoachRelation
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND client_id = ? AND status = ?", coachID, clientID, domain.RelationActive).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rel, nil
}

func (r *CoachRepository) UpdateRelation(ctx context.Context, rel *domain.CoachRelation) error {
	return r.db.WithContext(ctx).Save(rel).Error
}

func (r *CoachRepository) ListRelationsByCoach(ctx context.Context, coachID uuid.UUID, limit, skip int) ([]domain.CoachRelation, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.CoachRelation{}).Where("coach_id = ?", coachID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rels []domain.CoachRelation
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&rels).Error; err != nil {
		return nil, 0, err
	}
	return rels, total, nil
}

func (r *CoachRepository) ListRelationsByClient(ctx context.Context, clientID uuid.UUID, limit, skip int) ([]domain.CoachRelation, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.CoachRelation{}).Where("client_id = ?", clientID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rels []domain.CoachRelation
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&rels).Error; err != nil {
		return nil, 0, err
	}
	return rels, total, nil
}

func (r *CoachRepository) CreateProgram(ctx context.Context, program *domain.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *CoachRepository) FindProgram(ctx context.Context, id uuid.UUID) (*domain.Program, error) {
	var program domain.Program
	err := r.db.WithContext(ctx).First(&program, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

func (r *CoachRepository) UpdateProgram(ctx context.Context, program *domain.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

func (r *CoachRepository) ListProgramsByCoach(ctx context.Context, coachID uuid.UUID, limit, skip int) ([]domain.Program, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Program{}).Where("coach_id = ?", coachID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var programs []domain.Program
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

func (r *CoachRepository) ListProgramsByClient(ctx context.Context, clientID uuid.UUID, limit, skip int) ([]domain.Program, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Program{}).Where("client_id = ?", clientID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var programs []domain.Program
	if err := q.Limit(limit).Offset(skip).Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}
