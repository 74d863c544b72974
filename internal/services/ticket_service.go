package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// TicketService runs the support workflow: members open tickets,
// support staff respond, assign and close them.
type TicketService struct {
	tickets  *repositories.TicketRepository
	userRepo domain.UserRepository
}

func NewTicketService(tickets *repositories.TicketRepository, userRepo domain.UserRepository) *TicketService {
	return &TicketService{tickets: tickets, userRepo: userRepo}
}

func validPriority(p domain.TicketPriority) bool {
	switch p {
	case domain.PriorityLow, domain.PriorityNormal, domain.PriorityHigh, domain.PriorityUrgent:
		return true
	}
	return false
}

func (s *TicketService) Open(ctx context.Context, userID uuid.UUID, subject, body, category string, priority domain.TicketPriority) (*domain.Ticket, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: ticket subject is required", domain.ErrConflict)
	}
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !validPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrConflict, priority)
	}

	ticket := &domain.Ticket{
		UserID:   userID,
		Subject:  subject,
		Body:     body,
		Category: category,
		Priority: priority,
		Status:   domain.TicketOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Update edits the subject and body of a ticket that is not closed yet.
// Owner only; staff correspondence goes through responses instead.
func (s *TicketService) Update(ctx context.Context, ticketID, userID uuid.UUID, subject, body string) (*domain.Ticket, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: ticket subject is required", domain.ErrConflict)
	}
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrConflict
	}

	ticket.Subject = subject
	ticket.Body = body
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Get returns a ticket with its thread. Members see only their own.
func (s *TicketService) Get(ctx context.Context, ticketID, userID uuid.UUID, isStaff bool) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isStaff && ticket.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return ticket, nil
}

// Respond appends to the thread. A closed ticket takes no more
// responses; a staff response moves an open ticket to in progress.
func (s *TicketService) Respond(ctx context.Context, ticketID, authorID uuid.UUID, body string, isStaff bool) (*domain.TicketResponse, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: response body is required", domain.ErrConflict)
	}

	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isStaff && ticket.UserID != authorID {
		return nil, domain.ErrForbidden
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrConflict
	}

	response := &domain.TicketResponse{
		TicketID: ticketID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.tickets.AddResponse(ctx, response); err != nil {
		return nil, err
	}

	if isStaff && ticket.Status == domain.TicketOpen {
		ticket.Status = domain.TicketInProgress
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// Assign hands a ticket to a support account. Staff only.
func (s *TicketService) Assign(ctx context.Context, ticketID, assigneeID uuid.UUID) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrConflict
	}
	if _, err := s.userRepo.FindByID(ctx, assigneeID); err != nil {
		return nil, err
	}

	ticket.AssigneeID = &assigneeID
	if ticket.Status == domain.TicketOpen {
		ticket.Status = domain.TicketInProgress
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Close ends the workflow. The owner or staff may close.
func (s *TicketService) Close(ctx context.Context, ticketID, userID uuid.UUID, isStaff bool) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isStaff && ticket.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrConflict
	}

	ticket.Status = domain.TicketClosed
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Reopen puts a closed ticket back into the queue. The owner or staff
// may do it; an assigned ticket returns as in progress.
func (s *TicketService) Reopen(ctx context.Context, ticketID, userID uuid.UUID, isStaff bool) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isStaff && ticket.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if ticket.Status != domain.TicketClosed {
		return nil, domain.ErrConflict
	}

	ticket.Status = domain.TicketOpen
	if ticket.AssigneeID != nil {
		ticket.Status = domain.TicketInProgress
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func escalated(p domain.TicketPriority) domain.TicketPriority {
	switch p {
	case domain.PriorityLow:
		return domain.PriorityNormal
	case domain.PriorityNormal:
		return domain.PriorityHigh
	default:
		return domain.PriorityUrgent
	}
}

// Escalate bumps a live ticket's priority one step. Staff only,
// enforced at the route.
func (s *TicketService) Escalate(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrConflict
	}
	if ticket.Priority == domain.PriorityUrgent {
		return nil, domain.ErrConflict
	}

	ticket.Priority = escalated(ticket.Priority)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) ListMine(ctx context.Context, userID uuid.UUID, status domain.TicketStatus, limit, skip int) ([]domain.Ticket, int64, error) {
	return s.tickets.ListByUser(ctx, userID, status, limit, skip)
}

func (s *TicketService) ListAll(ctx context.Context, status domain.TicketStatus, assigneeID *uuid.UUID, limit, skip int) ([]domain.Ticket, int64, error) {
	return s.tickets.List(ctx, status, assigneeID, limit, skip)
}
