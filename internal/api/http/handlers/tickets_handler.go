package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AniruthXI/HelpDeskTicket/internal/api/dto"
	"github.com/AniruthXI/HelpDeskTicket/internal/auth"
	"github.com/AniruthXI/HelpDeskTicket/internal/config"
	"github.com/AniruthXI/HelpDeskTicket/internal/service"
	"github.com/AniruthXI/HelpDeskTicket/internal/storage"
	apperrors "github.com/AniruthXI/HelpDeskTicket/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	blobs   storage.BlobStore
	uploads config.UploadsConfig
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, blobs storage.BlobStore, uploads config.UploadsConfig) *TicketsHandler {
	return &TicketsHandler{service: ticketService, blobs: blobs, uploads: uploads}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), caller, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.TicketFromDomain(ticket))
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.service.ListTickets(c.Context(), caller, service.TicketListInput{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     parseInt(c.Query("page"), 1),
		Limit:    parseInt(c.Query("limit"), 10),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketsFromDomain(tickets))
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.GetTicket(c.Context(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateTicket(c.Context(), caller, c.Params("id"), service.TicketUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// AddComment POST /api/tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.Context(), caller, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CommentFromDomain(comment))
}

// AddAttachments POST /api/tickets/:id/attachments.
func (h *TicketsHandler) AddAttachments(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return apperrors.NewValidationError("at least one file required", nil)
	}
	if len(files) > h.uploads.MaxFilesPerCall {
		return apperrors.NewValidationError(
			fmt.Sprintf("at most %d files per upload", h.uploads.MaxFilesPerCall), nil)
	}

	maxSize := h.uploads.MaxFileSizeBytes()
	inputs := make([]service.AttachmentInput, 0, len(files))
	for _, file := range files {
		if file.Size > maxSize {
			return apperrors.NewValidationError("file exceeds size limit",
				map[string]any{"filename": file.Filename, "limit_bytes": maxSize})
		}
		path, err := h.blobs.Save(file)
		if err != nil {
			return apperrors.MapError(err)
		}
		inputs = append(inputs, service.AttachmentInput{
			FileName:    file.Filename,
			StoragePath: path,
			MimeType:    file.Header.Get("Content-Type"),
			SizeBytes:   file.Size,
		})
	}

	ticket, err := h.service.AddAttachments(c.Context(), caller, c.Params("id"), inputs)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// AssignTicket POST /api/tickets/:id/assign. Admin only.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("userId required", nil)
	}

	ticket, err := h.service.AssignTicket(c.Context(), caller, c.Params("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// UnassignTicket POST /api/tickets/:id/unassign. Admin only.
func (h *TicketsHandler) UnassignTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.UnassignTicket(c.Context(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// UpdatePriority PUT /api/tickets/:id/priority. Admin only.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdatePriority(c.Context(), caller, c.Params("id"), req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketFromDomain(ticket))
}

// Stats GET /api/tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.service.Stats(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
