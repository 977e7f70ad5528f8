package dto

import (
	"time"

	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
)

// CreateTicketRequest payload. Status is deliberately not accepted;
// new tickets always start pending.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.TicketCategory `json:"category"`
	Tags        []string              `json:"tags"`
	DueDate     *time.Time            `json:"dueDate"`
}

// UpdateTicketRequest carries a partial update; absent fields stay untouched.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *domain.TicketStatus   `json:"status"`
	Priority    *domain.TicketPriority `json:"priority"`
	Category    *domain.TicketCategory `json:"category"`
	Tags        []string               `json:"tags"`
	DueDate     *time.Time             `json:"dueDate"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	UserID string `json:"userId"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// TicketResponse mirrors the external ticket contract.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.TicketCategory `json:"category"`
	CreatedBy   *domain.UserRef       `json:"createdBy"`
	AssignedTo  *domain.UserRef       `json:"assignedTo,omitempty"`
	AssignedAt  *time.Time            `json:"assignedAt,omitempty"`
	Tags        []string              `json:"tags"`
	DueDate     *time.Time            `json:"dueDate,omitempty"`
	ResolvedAt  *time.Time            `json:"resolvedAt,omitempty"`
	ClosedAt    *time.Time            `json:"closedAt,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	Comments    []CommentResponse     `json:"comments,omitempty"`
	Attachments []AttachmentResponse  `json:"attachments,omitempty"`
}

// CommentResponse represents an embedded comment.
type CommentResponse struct {
	ID        string          `json:"id"`
	Author    *domain.UserRef `json:"user"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"filename"`
	Path      string `json:"path"`
	MimeType  string `json:"mimetype"`
	SizeBytes int64  `json:"size"`
}

// TicketFromDomain maps a ticket aggregate onto the response shape.
func TicketFromDomain(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		Category:    ticket.Category,
		CreatedBy:   ticket.Creator,
		AssignedTo:  ticket.Assignee,
		AssignedAt:  ticket.AssignedAt,
		Tags:        ticket.Tags,
		DueDate:     ticket.DueDate,
		ResolvedAt:  ticket.ResolvedAt,
		ClosedAt:    ticket.ClosedAt,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
	for i := range ticket.Comments {
		resp.Comments = append(resp.Comments, CommentFromDomain(&ticket.Comments[i]))
	}
	for _, att := range ticket.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:        att.ID,
			FileName:  att.FileName,
			Path:      att.StoragePath,
			MimeType:  att.MimeType,
			SizeBytes: att.SizeBytes,
		})
	}
	return resp
}

// CommentFromDomain maps one comment.
func CommentFromDomain(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Author:    comment.Author,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// TicketsFromDomain maps a slice of tickets.
func TicketsFromDomain(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, TicketFromDomain(&tickets[i]))
	}
	return result
}
