package domain

import "testing"

func TestValidStatus(t *testing.T) {
	for _, status := range TicketStatuses {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	for _, bad := range []TicketStatus{"", "open", "Pending", "done"} {
		if ValidStatus(bad) {
			t.Errorf("ValidStatus(%q) = true, want false", bad)
		}
	}
}

func TestValidPriority(t *testing.T) {
	for _, priority := range TicketPriorities {
		if !ValidPriority(priority) {
			t.Errorf("ValidPriority(%q) = false, want true", priority)
		}
	}
	for _, bad := range []TicketPriority{"", "critical", "LOW"} {
		if ValidPriority(bad) {
			t.Errorf("ValidPriority(%q) = true, want false", bad)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range TicketCategories {
		if !ValidCategory(category) {
			t.Errorf("ValidCategory(%q) = false, want true", category)
		}
	}
	for _, bad := range []TicketCategory{"", "sales", "feature request"} {
		if ValidCategory(bad) {
			t.Errorf("ValidCategory(%q) = true, want false", bad)
		}
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Error("regular user reported as admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin not reported as admin")
	}
	var nilUser *User
	if nilUser.IsAdmin() {
		t.Error("nil user reported as admin")
	}
}
