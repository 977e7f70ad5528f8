package service

import (
	"context"
	"testing"

	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
)

func newAdminFixture() (*AdminService, *ticketFixture) {
	fx := newTicketFixture()
	return NewAdminService(fx.users, fx.tickets), fx
}

func TestAdminListUsers(t *testing.T) {
	svc, _ := newAdminFixture()
	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len(users) = %d, want 3", len(users))
	}
}

func TestAdminGetUserDetails(t *testing.T) {
	svc, fx := newAdminFixture()
	ctx := context.Background()

	if _, err := fx.service.CreateTicket(ctx, fx.requester, TicketCreateInput{Title: "One"}); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	details, err := svc.GetUserDetails(ctx, fx.requester.ID)
	if err != nil {
		t.Fatalf("GetUserDetails: %v", err)
	}
	if details.User.ID != fx.requester.ID {
		t.Fatalf("User.ID = %q", details.User.ID)
	}
	if len(details.Stats) != len(domain.TicketStatuses) {
		t.Fatalf("len(Stats) = %d, want every status bucket", len(details.Stats))
	}
	if details.Stats[domain.TicketStatusPending] != 1 {
		t.Errorf("pending count = %d, want 1", details.Stats[domain.TicketStatusPending])
	}
	if details.Stats[domain.TicketStatusClosed] != 0 {
		t.Errorf("closed count = %d, want zero-filled 0", details.Stats[domain.TicketStatusClosed])
	}

	_, err = svc.GetUserDetails(ctx, "no-such-user")
	requireHTTPStatus(t, err, 404)
}

func TestAdminUpdateUserRole(t *testing.T) {
	svc, fx := newAdminFixture()
	ctx := context.Background()

	updated, err := svc.UpdateUserRole(ctx, fx.requester.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("Role = %q, want admin", updated.Role)
	}

	_, err = svc.UpdateUserRole(ctx, fx.requester.ID, domain.UserRole("superuser"))
	requireHTTPStatus(t, err, 400)
}

func TestAdminUpdateUserStatus(t *testing.T) {
	svc, fx := newAdminFixture()
	ctx := context.Background()

	updated, err := svc.UpdateUserStatus(ctx, fx.requester.ID, false)
	if err != nil {
		t.Fatalf("UpdateUserStatus: %v", err)
	}
	if updated.IsActive {
		t.Fatal("account still active after deactivation")
	}

	restored, err := svc.UpdateUserStatus(ctx, fx.requester.ID, true)
	if err != nil {
		t.Fatalf("UpdateUserStatus reactivate: %v", err)
	}
	if !restored.IsActive {
		t.Fatal("account not reactivated")
	}
}

func TestAdminListUserTickets(t *testing.T) {
	svc, fx := newAdminFixture()
	ctx := context.Background()

	if _, err := fx.service.CreateTicket(ctx, fx.requester, TicketCreateInput{Title: "One"}); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	if _, err := svc.ListUserTickets(ctx, fx.requester.ID, 5, 0); err != nil {
		t.Fatalf("ListUserTickets: %v", err)
	}
	if fx.tickets.lastFilter.CreatedBy == nil || *fx.tickets.lastFilter.CreatedBy != fx.requester.ID {
		t.Fatal("filter not scoped to the user's created tickets")
	}
	if fx.tickets.lastFilter.Limit != 5 {
		t.Fatalf("Limit = %d, want 5", fx.tickets.lastFilter.Limit)
	}
}
