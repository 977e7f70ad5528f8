package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
	"github.com/AniruthXI/HelpDeskTicket/internal/repository"
	apperrors "github.com/AniruthXI/HelpDeskTicket/pkg/util"
)

// AdminService covers privileged user management.
type AdminService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, tickets repository.TicketRepository) *AdminService {
	return &AdminService{users: users, tickets: tickets}
}

// UserDetails bundles an account with its per-status ticket counts.
type UserDetails struct {
	User  *domain.User
	Stats map[domain.TicketStatus]int
}

// ListUsers returns all accounts, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUserDetails loads one account with zero-filled status counts over
// the tickets it created.
func (s *AdminService) GetUserDetails(ctx context.Context, userID string) (*UserDetails, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.tickets.CountByStatus(ctx, repository.TicketFilter{CreatedBy: &user.ID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stats := make(map[domain.TicketStatus]int, len(domain.TicketStatuses))
	for _, status := range domain.TicketStatuses {
		stats[status] = counts[status]
	}
	return &UserDetails{User: user, Stats: stats}, nil
}

// UpdateUserRole changes the account role after validating the value.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUserStatus flips the active flag.
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID string, isActive bool) (*domain.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = isActive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUserTickets returns tickets created by the given user.
func (s *AdminService) ListUserTickets(ctx context.Context, userID string, limit, offset int) ([]domain.Ticket, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatedBy: &user.ID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

func (s *AdminService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
