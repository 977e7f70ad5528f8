package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AniruthXI/HelpDeskTicket/internal/api/dto"
	"github.com/AniruthXI/HelpDeskTicket/internal/auth"
	"github.com/AniruthXI/HelpDeskTicket/internal/service"
	apperrors "github.com/AniruthXI/HelpDeskTicket/pkg/util"
)

// AdminHandler exposes privileged user-management endpoints. The router
// guards the whole group with the admin role check.
type AdminHandler struct {
	admin   *service.AdminService
	tickets *service.TicketService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, ticketService *service.TicketService) *AdminHandler {
	return &AdminHandler{admin: adminService, tickets: ticketService}
}

// ListUsers GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UsersFromDomain(users)})
}

// GetUserDetails GET /api/admin/users/:id.
func (h *AdminHandler) GetUserDetails(c *fiber.Ctx) error {
	details, err := h.admin.GetUserDetails(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UserDetailsResponse{
		User:  dto.UserFromDomain(details.User),
		Stats: details.Stats,
	})
}

// UpdateUserRole PUT /api/admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.admin.UpdateUserRole(c.Context(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserFromDomain(user))
}

// UpdateUserStatus PUT /api/admin/users/:id/status.
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.admin.UpdateUserStatus(c.Context(), c.Params("id"), req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserFromDomain(user))
}

// DeactivateUser DELETE /api/admin/users/:id.
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	if _, err := h.admin.UpdateUserStatus(c.Context(), c.Params("id"), false); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deactivated successfully"})
}

// ListUserTickets GET /api/admin/users/:id/tickets.
func (h *AdminHandler) ListUserTickets(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)
	tickets, err := h.admin.ListUserTickets(c.Context(), c.Params("id"), limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketsFromDomain(tickets))
}

// Stats GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.tickets.Stats(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
