package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AniruthXI/HelpDeskTicket/internal/api/http/handlers"
	"github.com/AniruthXI/HelpDeskTicket/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadsDir     string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Attachment and profile-image binaries are served statically, not
	// through the JSON API.
	app.Static("/uploads", cfg.UploadsDir)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password/:token", cfg.Auth.ResetPassword)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateProfile)
	authGroup.Post("/profile/image", cfg.AuthMiddleware.Handle, cfg.Auth.UploadProfileImage)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/attachments", cfg.Tickets.AddAttachments)
	tickets.Post("/:id/assign", auth.RequireAdmin(), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/unassign", auth.RequireAdmin(), cfg.Tickets.UnassignTicket)
	tickets.Put("/:id/priority", auth.RequireAdmin(), cfg.Tickets.UpdatePriority)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUserDetails)
	admin.Put("/users/:id/role", cfg.Admin.UpdateUserRole)
	admin.Put("/users/:id/status", cfg.Admin.UpdateUserStatus)
	admin.Delete("/users/:id", cfg.Admin.DeactivateUser)
	admin.Get("/users/:id/tickets", cfg.Admin.ListUserTickets)
	admin.Get("/stats", cfg.Admin.Stats)
}
