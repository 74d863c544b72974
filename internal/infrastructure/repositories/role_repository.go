package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// RoleRepositoryImpl implements domain.RoleRepository using GORM.
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// FindByName implements domain.RoleRepository.
func (r *RoleRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// List implements domain.RoleRepository.
func (r *RoleRepositoryImpl) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name").Find(&roles).Error
	return roles, err
}

// Seed implements domain.RoleRepository. Roles and permissions are
// read-mostly reference data, created once when the tables are empty.
func (r *RoleRepositoryImpl) Seed(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	perms := defaultPermissions()
	if err := r.db.WithContext(ctx).Create(&perms).Error; err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}

	byName := make(map[string]domain.Permission, len(perms))
	for _, p := range perms {
		byName[p.Name] = p
	}

	roles := defaultRoles(byName)
	if err := r.db.WithContext(ctx).Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	return nil
}

func defaultPermissions() []domain.Permission {
	names := []struct{ name, desc string }{
		{"user:read", "Can read user data"},
		{"user:write", "Can create/update user data"},
		{"user:delete", "Can delete users"},
		{"service:read", "Can read service data"},
		{"service:write", "Can create/update services"},
		{"service:delete", "Can delete services"},
		{"purchase:read", "Can read purchase data"},
		{"purchase:write", "Can create/update purchases"},
		{"purchase:refund", "Can process refunds"},
		{"coach:read", "Can read coach data"},
		{"coach:write", "Can create/update coach data"},
		{"analytics:read", "Can view analytics"},
		{"ticket:read", "Can read support tickets"},
		{"ticket:write", "Can respond to tickets"},
		{"ticket:assign", "Can assign tickets"},
	}
	perms := make([]domain.Permission, 0, len(names))
	for _, n := range names {
		perms = append(perms, domain.Permission{Name: n.name, Description: n.desc})
	}
	return perms
}

func defaultRoles(perms map[string]domain.Permission) []domain.Role {
	pick := func(names ...string) []domain.Permission {
		out := make([]domain.Permission, 0, len(names))
		for _, n := range names {
			out = append(out, perms[n])
		}
		return out
	}

	all := make([]domain.Permission, 0, len(perms))
	for _, p := range perms {
		all = append(all, p)
	}

	return []domain.Role{
		{
			Name:        "member",
			Description: "Regular gym member",
			Permissions: pick("service:read", "purchase:read", "coach:read", "ticket:read", "ticket:write"),
		},
		{
			Name:        "coach",
			Description: "Gym trainer/coach",
			Permissions: pick("service:read", "coach:read", "coach:write", "ticket:read", "ticket:write"),
		},
		{
			Name:        "support",
			Description: "Customer support staff",
			Permissions: pick("user:read", "service:read", "purchase:read", "coach:read", "ticket:read", "ticket:write", "ticket:assign"),
		},
		{
			Name:        "admin",
			Description: "System administrator",
			Permissions: all,
		},
	}
}
