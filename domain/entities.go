package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus tracks the lifecycle of an account.
type UserStatus string

const (
	StatusActive              UserStatus = "active"
	StatusInactive            UserStatus = "inactive"
	StatusSuspended           UserStatus = "suspended"
	StatusPendingVerification UserStatus = "pending_verification"
)

// User represents a member account. Phone is the primary credential;
// email and username are optional and may be attached later.
type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Phone           string     `gorm:"uniqueIndex;size:32;not null"`
	Email           *string    `gorm:"uniqueIndex;size:255"`
	Username        *string    `gorm:"uniqueIndex;size:64"`
	PasswordHash    string     `gorm:"column:password;not null"`
	IsActive        bool       `gorm:"index;default:true"`
	IsVerified      bool       `gorm:"index;default:false"`
	IsEmailVerified bool       `gorm:"default:false"`
	Status          UserStatus `gorm:"index;size:32;default:pending_verification"`
	LastLogin       *time.Time
	PendingEmail    *string `gorm:"size:255"`
	EmailToken      *string `gorm:"size:64;index"`
	EmailTokenExp   *time.Time
	Roles           []Role `gorm:"many2many:user_roles"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of all assigned roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Role is a named group of permissions, seeded at startup.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:64;not null"`
	Description string
	Permissions []Permission `gorm:"many2many:role_permissions"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Permission names a single capability, e.g. "purchase:refund".
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:64;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TokenRecord mirrors an issued access token into the cache store. A token is
// only usable while its record exists and is not revoked.
type TokenRecord struct {
	AccountID uuid.UUID `json:"account_id"`
	IsRevoked bool      `json:"is_revoked"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenClaims is the decoded JWT payload.
type TokenClaims struct {
	Subject   uuid.UUID
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthResult is returned by login, phone verification and refresh.
type AuthResult struct {
	User        *User
	AccessToken string
	ExpiresAt   time.Time
}

// OTPPurpose selects the cache key namespace and TTL for a one-time code.
type OTPPurpose string

const (
	OTPPhoneVerification OTPPurpose = "phone_verification"
	OTPPasswordReset     OTPPurpose = "password_reset"
)

// Gender of a member profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Profile holds member-facing personal data, one row per user.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      *Gender `gorm:"size:16"`
	Bio         string  `gorm:"type:text"`
	Height      *float64
	Weight      *float64
	City        string
	Province    string
	Address     string
	PostalCode  string
	Photo       *ProfilePhoto `gorm:"foreignKey:ProfileID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProfilePhoto references an object stored in the media bucket.
type ProfilePhoto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID `gorm:"type:uuid;index;not null"`
	FileName    string
	ObjectKey   string `gorm:"uniqueIndex"`
	URL         string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

func (p *ProfilePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Coach is the trainer-facing profile of a user holding the coach role.
type Coach struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Specialization string    `gorm:"index;size:128"`
	Bio            string    `gorm:"type:text"`
	ExperienceYrs  int
	// No column default: an explicit false on create must not be
	// flipped by the database.
	IsActive  bool `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Coach) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// RelationStatus tracks a client-coach engagement.
type RelationStatus string

const (
	RelationActive     RelationStatus = "active"
	RelationExpired    RelationStatus = "expired"
	RelationTerminated RelationStatus = "terminated"
)

// CoachRelation links a client to a coach for a bounded period.
type CoachRelation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CoachID   uuid.UUID      `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID      `gorm:"type:uuid;index;not null"`
	Status    RelationStatus `gorm:"index;size:32;default:active"`
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *CoachRelation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ProgramStatus tracks a training program lifecycle.
type ProgramStatus string

const (
	ProgramDraft    ProgramStatus = "draft"
	ProgramActive   ProgramStatus = "active"
	ProgramArchived ProgramStatus = "archived"
)

// Program is a training plan authored by a coach, optionally assigned to a client.
type Program struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CoachID     uuid.UUID     `gorm:"type:uuid;index;not null"`
	ClientID    *uuid.UUID    `gorm:"type:uuid;index"`
	Title       string        `gorm:"not null"`
	Description string        `gorm:"type:text"`
	Status      ProgramStatus `gorm:"index;size:32;default:draft"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ServiceCategory groups purchasable services.
type ServiceCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:128;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Service is a purchasable membership offering (plan, class pack, session).
type Service struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"index;size:128;not null"`
	Description  string    `gorm:"type:text"`
	Price        int64     `gorm:"not null"`
	DurationDays int
	Capacity     int
	// No column default, same reason as Coach.IsActive.
	IsActive  bool `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PurchaseStatus tracks payment state.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchasePaid      PurchaseStatus = "paid"
	PurchaseCancelled PurchaseStatus = "cancelled"
	PurchaseRefunded  PurchaseStatus = "refunded"
)

// Purchase records a member buying a service.
type Purchase struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID      `gorm:"type:uuid;index;not null"`
	Amount    int64          `gorm:"not null"`
	Status    PurchaseStatus `gorm:"index;size:32;default:pending"`
	Reference string         `gorm:"size:64"`
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TicketStatus and TicketPriority drive the support workflow.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// Ticket is a support request raised by a member.
type Ticket struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID        `gorm:"type:uuid;index;not null"`
	AssigneeID *uuid.UUID       `gorm:"type:uuid;index"`
	Subject    string           `gorm:"not null"`
	Body       string           `gorm:"type:text"`
	Category   string           `gorm:"index;size:64"`
	Priority   TicketPriority   `gorm:"index;size:16;default:normal"`
	Status     TicketStatus     `gorm:"index;size:32;default:open"`
	Responses  []TicketResponse `gorm:"foreignKey:TicketID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TicketResponse is one entry of a ticket thread.
type TicketResponse struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID      uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorID      uuid.UUID `gorm:"type:uuid;not null"`
	Body          string    `gorm:"type:text;not null"`
	AttachmentURL string
	CreatedAt     time.Time
}

func (r *TicketResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Message is a direct message between two members.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	RecipientID uuid.UUID  `gorm:"type:uuid;index;not null"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Subject     string
	Body        string `gorm:"type:text;not null"`
	IsRead      bool   `gorm:"index;default:false"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Pagination describes one page of a list response.
type Pagination struct {
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	Skip        int   `json:"skip"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// NewPagination computes page metadata for a limit/offset query.
func NewPagination(total int64, limit, skip int) Pagination {
	if limit <= 0 {
		limit = 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:       total,
		Limit:       limit,
		Skip:        skip,
		CurrentPage: skip/limit + 1,
		TotalPages:  pages,
		HasPrevious: skip > 0,
		HasNext:     int64(skip+limit) < total,
	}
}
