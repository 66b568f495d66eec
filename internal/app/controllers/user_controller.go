package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/app/services"
	"github.com/mhasan/dancecamp/internal/middleware"
)

// UserController handles account operations
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterUser records an account on first sign-in
// @Summary Register an account
// @Description Records an account for a newly signed-in user. Registering an email that already exists keeps the existing account untouched and reports it.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=models.User} "Account registered"
// @Success 200 {object} dto.APIResponse "Account already registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) RegisterUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid account data", err)
		return
	}

	user := &models.User{
		Email:       req.Email,
		Name:        req.Name,
		PhotoURL:    req.PhotoURL,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Role:        models.RoleStudent,
	}

	created, err := c.userService.RegisterUser(ctx, user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !created {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Message:   "account already registered",
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}

// GetAllUsers lists every account
// @Summary List all accounts
// @Description Retrieves every registered account. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Accounts retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      users,
		Timestamp: time.Now(),
	})
}

// UpdateRole changes an account's role
// @Summary Update an account's role
// @Description Changes the role of an account. The role value must be one of student, instructor or admin. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid role value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/role [patch]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid account ID")
		return
	}

	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid role value", err)
		return
	}

	if err := c.userService.UpdateRole(ctx, id, models.RoleType(req.Role)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "role updated",
		Timestamp: time.Now(),
	})
}

// DeleteUser removes an account
// @Summary Delete an account
// @Description Removes an account. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse "Account deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid account ID")
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "account deleted",
		Timestamp: time.Now(),
	})
}

// CheckAdminRole reports whether an email holds the admin role
// @Summary Check admin role
// @Description Reports whether the account registered under the email holds the admin role. The email must match the caller's token subject.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Account email"
// @Success 200 {object} dto.APIResponse{data=dto.RoleCheckResponse} "Role check result"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Email does not match token subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/admin/{email} [get]
func (c *UserController) CheckAdminRole(ctx *gin.Context) {
	c.checkRole(ctx, models.RoleAdmin)
}

// CheckInstructorRole reports whether an email holds the instructor role
// @Summary Check instructor role
// @Description Reports whether the account registered under the email holds the instructor role. The email must match the caller's token subject.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Account email"
// @Success 200 {object} dto.APIResponse{data=dto.RoleCheckResponse} "Role check result"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Email does not match token subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/instructor/{email} [get]
func (c *UserController) CheckInstructorRole(ctx *gin.Context) {
	c.checkRole(ctx, models.RoleInstructor)
}

func (c *UserController) checkRole(ctx *gin.Context, role models.RoleType) {
	email := ctx.Param("email")

	holds, err := c.userService.HasRole(ctx, email, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var resp dto.RoleCheckResponse
	switch role {
	case models.RoleAdmin:
		resp.Admin = &holds
	case models.RoleInstructor:
		resp.Instructor = &holds
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
