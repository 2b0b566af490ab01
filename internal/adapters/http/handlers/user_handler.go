package handlers

import (
	"errors"

	"rentdesk/internal/core/services"
	"rentdesk/internal/pkg/pagination"
	"rentdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles staff account endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// userFail maps account errors before falling back to the shared mapping
func userFail(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrUsernameAlreadyExists):
		return response.Conflict(c, "Username already exists")
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return response.Conflict(c, "Email already exists")
	case errors.Is(err, services.ErrWeakPassword):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrOldPasswordWrong):
		return response.BadRequest(c, "Old password is incorrect")
	case errors.Is(err, services.ErrCannotDeleteSelf), errors.Is(err, services.ErrCannotChangeOwnRole):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	}
	return fail(c, err, action)
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get a paginated list of staff accounts (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	users, total, err := h.userService.ListUsers(c.Context(), authOf(c), params.Offset, params.Limit)
	if err != nil {
		return userFail(c, err, "list users")
	}
	return paged(c, "Users retrieved successfully", users, params, total)
}

// CreateUser handles creating a staff account (Admin only)
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "create user")
	}

	user, err := h.userService.CreateUser(c.Context(), authOf(c), &input)
	if err != nil {
		return userFail(c, err, "create user")
	}
	return response.Created(c, "User created successfully", fiber.Map{"user": user})
}

// GetUser handles getting a user by ID
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "get user")
	}

	user, err := h.userService.GetUserByID(c.Context(), authOf(c), id)
	if err != nil {
		return userFail(c, err, "get user")
	}
	return response.Success(c, "User retrieved successfully", fiber.Map{"user": user})
}

// UpdateUser handles updating a user (Admin only)
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserByAdminInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "update user")
	}
	var input services.UpdateUserByAdminInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "update user")
	}

	user, err := h.userService.UpdateUserByAdmin(c.Context(), authOf(c), id, &input)
	if err != nil {
		return userFail(c, err, "update user")
	}
	return response.Success(c, "User updated successfully", fiber.Map{"user": user})
}

// DeleteUser handles deleting a user (Admin only)
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "delete user")
	}
	if err := h.userService.DeleteUser(c.Context(), authOf(c), id); err != nil {
		return userFail(c, err, "delete user")
	}
	return response.Success(c, "User deleted successfully", nil)
}

// ChangePassword handles changing the caller's password
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var input services.ChangePasswordInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "change password")
	}
	if err := h.userService.ChangePassword(c.Context(), authOf(c), &input); err != nil {
		return userFail(c, err, "change password")
	}
	return response.Success(c, "Password changed successfully", nil)
}
