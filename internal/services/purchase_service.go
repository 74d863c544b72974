package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// PurchaseService drives the purchase state machine:
// pending -> paid -> refunded, with pending -> cancelled as the only
// other exit.
type PurchaseService struct {
	purchases *repositories.PurchaseRepository
	catalog   *repositories.CatalogRepository
}

func NewPurchaseService(purchases *repositories.PurchaseRepository, catalog *repositories.CatalogRepository) *PurchaseService {
	return &PurchaseService{purchases: purchases, catalog: catalog}
}

// Create opens a pending purchase at the service's current price.
func (s *PurchaseService) Create(ctx context.Context, userID, serviceID uuid.UUID) (*domain.Purchase, error) {
	service, err := s.catalog.FindService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, domain.ErrConflict
	}

	ref, err := paymentReference()
	if err != nil {
		return nil, err
	}

	purchase := &domain.Purchase{
		UserID:    userID,
		ServiceID: serviceID,
		Amount:    service.Price,
		Status:    domain.PurchasePending,
		Reference: ref,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Pay marks a pending purchase as paid. Owner only.
func (s *PurchaseService) Pay(ctx context.Context, purchaseID, userID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.ownedBy(ctx, purchaseID, userID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchasePending {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	purchase.Status = domain.PurchasePaid
	purchase.PaidAt = &now
	if err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Cancel aborts a pending purchase. Owner only.
func (s *PurchaseService) Cancel(ctx context.Context, purchaseID, userID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.ownedBy(ctx, purchaseID, userID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchasePending {
		return nil, domain.ErrConflict
	}
	purchase.Status = domain.PurchaseCancelled
	if err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Refund reverses a paid purchase. Staff only, enforced at the route.
func (s *PurchaseService) Refund(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchasePaid {
		return nil, domain.ErrConflict
	}
	purchase.Status = domain.PurchaseRefunded
	if err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *PurchaseService) Get(ctx context.Context, purchaseID, userID uuid.UUID, isStaff bool) (*domain.Purchase, error) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !isStaff && purchase.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return purchase, nil
}

func (s *PurchaseService) ListMine(ctx context.Context, userID uuid.UUID, status domain.PurchaseStatus, limit, skip int) ([]domain.Purchase, int64, error) {
	return s.purchases.ListByUser(ctx, userID, status, limit, skip)
}

func (s *PurchaseService) ListAll(ctx context.Context, status domain.PurchaseStatus, limit, skip int) ([]domain.Purchase, int64, error) {
	return s.purchases.List(ctx, status, limit, skip)
}

func (s *PurchaseService) ownedBy(ctx context.Context, purchaseID, userID uuid.UUID) (*domain.Purchase, error) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return purchase, nil
}

func paymentReference() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate payment reference: %w", err)
	}
	return "pay_" + hex.EncodeToString(buf), nil
}
