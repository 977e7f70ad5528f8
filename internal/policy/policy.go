// Package policy holds the access decisions for tickets in one place so
// handlers and services do not re-implement role checks per endpoint.
package policy

import "github.com/AniruthXI/HelpDeskTicket/internal/domain"

// CanView reports whether the caller may read the ticket. Admins see
// everything; other callers must be the creator or the current assignee.
func CanView(caller *domain.User, ticket *domain.Ticket) bool {
	if caller == nil || ticket == nil {
		return false
	}
	if caller.IsAdmin() {
		return true
	}
	if ticket.CreatedBy == caller.ID {
		return true
	}
	return ticket.AssignedTo != nil && *ticket.AssignedTo == caller.ID
}

// CanModify reports whether the caller may change the ticket. The rule is
// identical to CanView: creator, assignee, or admin.
func CanModify(caller *domain.User, ticket *domain.Ticket) bool {
	return CanView(caller, ticket)
}
