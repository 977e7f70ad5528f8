package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/AniruthXI/HelpDeskTicket/internal/api/dto"
	"github.com/AniruthXI/HelpDeskTicket/internal/auth"
	"github.com/AniruthXI/HelpDeskTicket/internal/service"
	"github.com/AniruthXI/HelpDeskTicket/internal/storage"
	apperrors "github.com/AniruthXI/HelpDeskTicket/pkg/util"
)

// AuthHandler exposes registration, login, and credential endpoints.
type AuthHandler struct {
	auth  *service.AuthService
	blobs storage.BlobStore
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, blobs storage.BlobStore) *AuthHandler {
	return &AuthHandler{auth: authService, blobs: blobs}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		User:      dto.UserFromDomain(user),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{
		User:      dto.UserFromDomain(user),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"user": dto.UserFromDomain(caller)})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.auth.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Reset password email sent"})
}

// ResetPassword handles POST /api/auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.ResetPassword(c.Context(), c.Params("token"), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset successful"})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), caller.ID, service.ProfileUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.UserFromDomain(user)})
}

// UploadProfileImage handles POST /api/auth/profile/image.
func (h *AuthHandler) UploadProfileImage(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	file, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("image file required", nil)
	}

	path, err := h.blobs.Save(file)
	if err != nil {
		return apperrors.MapError(err)
	}
	user, err := h.auth.UpdateProfileImage(c.Context(), caller.ID, path)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profileImage": user.ProfileImage})
}
