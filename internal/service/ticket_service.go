package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AniruthXI/HelpDeskTicket/internal/domain"
	"github.com/AniruthXI/HelpDeskTicket/internal/events"
	"github.com/AniruthXI/HelpDeskTicket/internal/policy"
	"github.com/AniruthXI/HelpDeskTicket/internal/repository"
	apperrors "github.com/AniruthXI/HelpDeskTicket/pkg/util"
)

// StatsCache is the best-effort cache used for aggregated counts.
// *persistence.Redis satisfies it; a nil cache disables caching.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration)
}

const adminStatsCacheKey = "helpdesk:stats:admin"

// TicketService is the lifecycle engine: it validates and applies state
// transitions, consults the access policy, and owns the ticket's comment
// and attachment lists.
type TicketService struct {
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
	cache       StatsCache
	statsTTL    time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
	StatsCache     StatsCache
	StatsTTL       time.Duration
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
		cache:       deps.StatsCache,
		statsTTL:    deps.StatsTTL,
	}
}

// TicketCreateInput describes the ticket creation payload. A status value
// supplied by the client is ignored; new tickets always start pending.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
	Tags        []string
	DueDate     *time.Time
}

// TicketUpdateInput carries a partial update; nil fields are left untouched.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	Category    *domain.TicketCategory
	Tags        []string
	DueDate     *time.Time
}

// TicketListInput captures list filters as received from the client.
type TicketListInput struct {
	Status   string
	Priority string
	Category string
	Search   string
	Page     int
	Limit    int
}

// AttachmentInput describes stored attachment metadata.
type AttachmentInput struct {
	FileName    string
	StoragePath string
	MimeType    string
	SizeBytes   int64
}

// TicketStats aggregates counts per status and per priority. Every enum
// value is present, zero-filled when no ticket matches.
type TicketStats struct {
	StatusCounts   map[domain.TicketStatus]int   `json:"statusStats"`
	PriorityCounts map[domain.TicketPriority]int `json:"priorityStats"`
}

// CreateTicket creates a ticket owned by the caller.
func (s *TicketService) CreateTicket(ctx context.Context, caller *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if input.Category == "" {
		input.Category = domain.TicketCategoryGeneral
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": input.Category})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusPending,
		Priority:    input.Priority,
		Category:    input.Category,
		CreatedBy:   caller.ID,
		Tags:        input.Tags,
		DueDate:     input.DueDate,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Creator = caller.Ref()

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  caller.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
			Category: ticket.Category,
		},
	})
	return ticket, nil
}

// ListTickets returns the tickets visible to the caller, filtered and
// paginated, newest first.
func (s *TicketService) ListTickets(ctx context.Context, caller *domain.User, input TicketListInput) ([]domain.Ticket, error) {
	filter, err := s.buildFilter(caller, input)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.expandTicketRefs(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicket loads one ticket with its comments and attachments, enforcing
// the access policy.
func (s *TicketService) GetTicket(ctx context.Context, caller *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Comments = comments
	ticket.Attachments = attachments

	if err := s.expandTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket applies a partial update. The first transition into
// resolved or closed stamps the matching timestamp; the stamps are never
// cleared by later status changes.
func (s *TicketService) UpdateTicket(ctx context.Context, caller *domain.User, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	oldStatus := ticket.Status

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		ticket.Title = title
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		now := time.Now()
		if *input.Status == domain.TicketStatusResolved && ticket.Status != domain.TicketStatusResolved && ticket.ResolvedAt == nil {
			ticket.ResolvedAt = &now
		}
		if *input.Status == domain.TicketStatusClosed && ticket.Status != domain.TicketStatusClosed && ticket.ClosedAt == nil {
			ticket.ClosedAt = &now
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}
	if input.Category != nil {
		if !domain.ValidCategory(*input.Category) {
			return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": *input.Category})
		}
		ticket.Category = *input.Category
	}
	if input.Tags != nil {
		ticket.Tags = input.Tags
	}
	if input.DueDate != nil {
		ticket.DueDate = input.DueDate
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.expandTicket(ctx, ticket); err != nil {
		return nil, err
	}

	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  caller.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// AssignTicket hands the ticket to a user and moves it to assigned.
// Admin-only; the route enforces the role.
func (s *TicketService) AssignTicket(ctx context.Context, actor *domain.User, ticketID, userID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	assignee, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	now := time.Now()
	ticket.AssignedTo = &assignee.ID
	ticket.AssignedAt = &now
	ticket.Status = domain.TicketStatusAssigned
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Assignee = assignee.Ref()
	if err := s.expandTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload:  events.TicketAssignedPayload{AssigneeID: assignee.ID},
	})
	return ticket, nil
}

// UnassignTicket clears the assignment and resets the ticket to pending.
func (s *TicketService) UnassignTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.AssignedTo = nil
	ticket.AssignedAt = nil
	ticket.Assignee = nil
	ticket.Status = domain.TicketStatusPending
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.expandTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUnassigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
	})
	return ticket, nil
}

// UpdatePriority sets the priority after validating it against the enum;
// an invalid value fails before the ticket is touched.
func (s *TicketService) UpdatePriority(ctx context.Context, actor *domain.User, ticketID string, priority domain.TicketPriority) (*domain.Ticket, error) {
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority level", map[string]any{"priority": priority})
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	oldPriority := ticket.Priority
	ticket.Priority = priority
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.expandTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: priority,
		},
	})
	return ticket, nil
}

// AddComment appends a comment authored by the caller.
func (s *TicketService) AddComment(ctx context.Context, caller *domain.User, ticketID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: caller.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	comment.Author = caller.Ref()

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		ActorID:  caller.ID,
		Payload: events.TicketCommentAddedPayload{
			CommentID:      comment.ID,
			AuthorID:       caller.ID,
			ContentPreview: stringPreview(content, 120),
		},
	})
	return comment, nil
}

// AddAttachments appends stored attachment metadata to the ticket and
// returns the ticket with its full attachment list.
func (s *TicketService) AddAttachments(ctx context.Context, caller *domain.User, ticketID string, inputs []AttachmentInput) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	for _, input := range inputs {
		record := &domain.Attachment{
			TicketID:    ticket.ID,
			FileName:    input.FileName,
			StoragePath: input.StoragePath,
			MimeType:    input.MimeType,
			SizeBytes:   input.SizeBytes,
		}
		if err := s.attachments.Create(ctx, record); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Attachments = attachments
	if err := s.expandTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Stats aggregates status and priority counts over the caller-visible
// ticket set. The admin-wide result is served from cache when fresh.
func (s *TicketService) Stats(ctx context.Context, caller *domain.User) (*TicketStats, error) {
	filter := repository.TicketFilter{}
	if !caller.IsAdmin() {
		callerID := caller.ID
		filter.VisibleTo = &callerID
	} else if s.cache != nil {
		var cached TicketStats
		if hit, err := s.cache.GetJSON(ctx, adminStatsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	statusCounts, err := s.tickets.CountByStatus(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	priorityCounts, err := s.tickets.CountByPriority(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &TicketStats{
		StatusCounts:   make(map[domain.TicketStatus]int, len(domain.TicketStatuses)),
		PriorityCounts: make(map[domain.TicketPriority]int, len(domain.TicketPriorities)),
	}
	for _, status := range domain.TicketStatuses {
		stats.StatusCounts[status] = statusCounts[status]
	}
	for _, priority := range domain.TicketPriorities {
		stats.PriorityCounts[priority] = priorityCounts[priority]
	}

	if caller.IsAdmin() && s.cache != nil {
		s.cache.SetJSON(ctx, adminStatsCacheKey, stats, s.statsTTL)
	}
	return stats, nil
}

func (s *TicketService) buildFilter(caller *domain.User, input TicketListInput) (repository.TicketFilter, error) {
	filter := repository.TicketFilter{}

	if input.Status != "" {
		status := domain.TicketStatus(input.Status)
		if !domain.ValidStatus(status) {
			return filter, apperrors.NewValidationError("invalid status filter", map[string]any{"status": input.Status})
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := domain.TicketPriority(input.Priority)
		if !domain.ValidPriority(priority) {
			return filter, apperrors.NewValidationError("invalid priority filter", map[string]any{"priority": input.Priority})
		}
		filter.Priority = &priority
	}
	if input.Category != "" {
		category := domain.TicketCategory(input.Category)
		if !domain.ValidCategory(category) {
			return filter, apperrors.NewValidationError("invalid category filter", map[string]any{"category": input.Category})
		}
		filter.Category = &category
	}
	if strings.TrimSpace(input.Search) != "" {
		search := strings.TrimSpace(input.Search)
		filter.Search = &search
	}
	if !caller.IsAdmin() {
		callerID := caller.ID
		filter.VisibleTo = &callerID
	}

	page := input.Page
	if page <= 0 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit
	return filter, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// expandTicket populates creator/assignee/comment-author references.
func (s *TicketService) expandTicket(ctx context.Context, ticket *domain.Ticket) error {
	refs := map[string]*domain.UserRef{}
	lookup := func(id string) (*domain.UserRef, error) {
		if ref, ok := refs[id]; ok {
			return ref, nil
		}
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			if err == pgx.ErrNoRows {
				refs[id] = nil
				return nil, nil
			}
			return nil, apperrors.MapError(err)
		}
		refs[id] = user.Ref()
		return refs[id], nil
	}

	var err error
	if ticket.Creator == nil {
		if ticket.Creator, err = lookup(ticket.CreatedBy); err != nil {
			return err
		}
	}
	if ticket.Assignee == nil && ticket.AssignedTo != nil {
		if ticket.Assignee, err = lookup(*ticket.AssignedTo); err != nil {
			return err
		}
	}
	for i := range ticket.Comments {
		if ticket.Comments[i].Author == nil {
			if ticket.Comments[i].Author, err = lookup(ticket.Comments[i].AuthorID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *TicketService) expandTicketRefs(ctx context.Context, tickets []domain.Ticket) error {
	for i := range tickets {
		if err := s.expandTicket(ctx, &tickets[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
