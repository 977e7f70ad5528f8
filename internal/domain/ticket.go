package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketStatuses lists every status in lifecycle order.
var TicketStatuses = []TicketStatus{
	TicketStatusPending,
	TicketStatusAssigned,
	TicketStatusInProgress,
	TicketStatusResolved,
	TicketStatusClosed,
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketPriorities lists every priority from least to most urgent.
var TicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityUrgent,
}

// TicketCategory enumerates request categories.
type TicketCategory string

const (
	TicketCategoryTechnical      TicketCategory = "technical"
	TicketCategoryBilling        TicketCategory = "billing"
	TicketCategoryGeneral        TicketCategory = "general"
	TicketCategoryFeatureRequest TicketCategory = "feature_request"
)

// TicketCategories lists every category.
var TicketCategories = []TicketCategory{
	TicketCategoryTechnical,
	TicketCategoryBilling,
	TicketCategoryGeneral,
	TicketCategoryFeatureRequest,
}

// ValidStatus reports whether the status is one of the declared values.
func ValidStatus(status TicketStatus) bool {
	for _, candidate := range TicketStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// ValidPriority reports whether the priority is one of the declared values.
func ValidPriority(priority TicketPriority) bool {
	for _, candidate := range TicketPriorities {
		if candidate == priority {
			return true
		}
	}
	return false
}

// ValidCategory reports whether the category is one of the declared values.
func ValidCategory(category TicketCategory) bool {
	for _, candidate := range TicketCategories {
		if candidate == category {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for helpdesk requests. It exclusively owns its
// comment and attachment lists; CreatedBy is set once and never changes.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Category    TicketCategory
	CreatedBy   string
	AssignedTo  *string
	AssignedAt  *time.Time
	Tags        []string
	DueDate     *time.Time
	ResolvedAt  *time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Loaded on detail fetches; empty on list queries.
	Comments    []Comment
	Attachments []Attachment

	// Expanded references, populated by the service layer.
	Creator  *UserRef
	Assignee *UserRef
}

// Comment is owned by its parent ticket and has no independent lifecycle.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Content   string
	CreatedAt time.Time

	Author *UserRef
}

// Attachment stores metadata for an uploaded file; the binary content
// lives in the blob store under StoragePath.
type Attachment struct {
	ID          string
	TicketID    string
	FileName    string
	StoragePath string
	MimeType    string
	SizeBytes   int64
	CreatedAt   time.Time
}
