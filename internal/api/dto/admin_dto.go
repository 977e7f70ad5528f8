package dto

import "github.com/AniruthXI/HelpDeskTicket/internal/domain"

// UpdateRoleRequest payload.
type UpdateRoleRequest struct {
	Role domain.UserRole `json:"role"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// UserDetailsResponse bundles an account with its ticket stats.
type UserDetailsResponse struct {
	User  UserResponse                `json:"user"`
	Stats map[domain.TicketStatus]int `json:"stats"`
}
