package repository

import (
	"strings"
	"testing"

	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
)

func TestWhereClausesEmptyFilter(t *testing.T) {
	where, args := whereClauses(TicketFilter{})
	if where != "1=1" {
		t.Fatalf("where = %q, want %q", where, "1=1")
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestWhereClausesCombinesFilters(t *testing.T) {
	status := domain.TicketStatusPending
	priority := domain.TicketPriorityHigh
	search := "printer"
	visibleTo := "user-1"

	where, args := whereClauses(TicketFilter{
		Status:    &status,
		Priority:  &priority,
		Search:    &search,
		VisibleTo: &visibleTo,
	})

	want := "1=1 AND status=$1 AND priority=$2 AND (title ILIKE $3 OR description ILIKE $3) AND (created_by=$4 OR assigned_to=$4)"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if len(args) != 4 {
		t.Fatalf("len(args) = %d, want 4", len(args))
	}
	if args[2] != "%printer%" {
		t.Fatalf("search arg = %v, want %q", args[2], "%printer%")
	}
	if args[3] != "user-1" {
		t.Fatalf("visibility arg = %v, want %q", args[3], "user-1")
	}
}

// The search group and the visibility group must stay separate clauses; a
// text search must never widen what a non-admin can see.
func TestWhereClausesSearchCannotWidenVisibility(t *testing.T) {
	search := "urgent"
	visibleTo := "user-1"
	where, _ := whereClauses(TicketFilter{Search: &search, VisibleTo: &visibleTo})

	if !strings.Contains(where, ") AND (created_by=") {
		t.Fatalf("visibility group not AND-joined to search group: %q", where)
	}
}

func TestWhereClausesIgnoresBlankSearch(t *testing.T) {
	search := "   "
	where, args := whereClauses(TicketFilter{Search: &search})
	if where != "1=1" || len(args) != 0 {
		t.Fatalf("blank search produced where=%q args=%v", where, args)
	}
}

func TestBuildListQueryDefaults(t *testing.T) {
	query, args := buildListQuery(TicketFilter{})
	if !strings.Contains(query, "ORDER BY created_at DESC") {
		t.Fatalf("query missing ordering: %q", query)
	}
	if !strings.Contains(query, "LIMIT 10 OFFSET 0") {
		t.Fatalf("query missing default pagination: %q", query)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestBuildListQueryPagination(t *testing.T) {
	query, _ := buildListQuery(TicketFilter{Limit: 25, Offset: 50})
	if !strings.Contains(query, "LIMIT 25 OFFSET 50") {
		t.Fatalf("query missing pagination: %q", query)
	}
}

func TestBuildListQueryPlaceholdersMatchArgs(t *testing.T) {
	status := domain.TicketStatusClosed
	category := domain.TicketCategoryBilling
	createdBy := "user-2"
	query, args := buildListQuery(TicketFilter{
		Status:    &status,
		Category:  &category,
		CreatedBy: &createdBy,
	})

	for i := 1; i <= len(args); i++ {
		if !strings.Contains(query, "$"+string(rune('0'+i))) {
			t.Fatalf("query missing placeholder $%d: %q", i, query)
		}
	}
}
