package policy

import (
	"testing"

	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
)

func TestCanView(t *testing.T) {
	creator := &domain.User{ID: "u-creator", Role: domain.RoleUser}
	assignee := &domain.User{ID: "u-assignee", Role: domain.RoleUser}
	admin := &domain.User{ID: "u-admin", Role: domain.RoleAdmin}
	stranger := &domain.User{ID: "u-stranger", Role: domain.RoleUser}

	assigneeID := assignee.ID
	assigned := &domain.Ticket{ID: "t1", CreatedBy: creator.ID, AssignedTo: &assigneeID}
	unassigned := &domain.Ticket{ID: "t2", CreatedBy: creator.ID}

	cases := []struct {
		name   string
		caller *domain.User
		ticket *domain.Ticket
		want   bool
	}{
		{"creator sees own ticket", creator, assigned, true},
		{"assignee sees assigned ticket", assignee, assigned, true},
		{"admin sees any ticket", admin, assigned, true},
		{"stranger denied", stranger, assigned, false},
		{"assignee denied after unassign", assignee, unassigned, false},
		{"nil caller denied", nil, assigned, false},
		{"nil ticket denied", creator, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanView(tc.caller, tc.ticket); got != tc.want {
				t.Fatalf("CanView = %v, want %v", got, tc.want)
			}
			if got := CanModify(tc.caller, tc.ticket); got != tc.want {
				t.Fatalf("CanModify = %v, want %v", got, tc.want)
			}
		})
	}
}
