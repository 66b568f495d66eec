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

// ClassController handles catalog operations
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass adds a new offering to the catalog
// @Summary Create a class offering
// @Description Creates a new class offering owned by the calling instructor. New offerings start in pending status.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=models.Class} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an instructor"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid class data", err)
		return
	}

	class := &models.Class{
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		InstructorName:  req.InstructorName,
		InstructorEmail: middleware.CallerEmail(ctx),
		PriceCents:      req.PriceCents,
		AvailableSeats:  req.AvailableSeats,
	}

	if err := c.classService.CreateClass(ctx, class); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      class,
		Timestamp: time.Now(),
	})
}

// GetAllClasses lists every offering
// @Summary List all class offerings
// @Description Retrieves every offering regardless of moderation status. Admin only.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	classes, err := c.classService.GetAllClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// GetApprovedClasses lists the public catalog
// @Summary List approved classes
// @Description Retrieves every approved offering. Public endpoint.
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Approved classes retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/approved [get]
func (c *ClassController) GetApprovedClasses(ctx *gin.Context) {
	classes, err := c.classService.GetApprovedClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// GetPopularClasses lists the most enrolled approved offerings
// @Summary List popular classes
// @Description Retrieves the approved offerings with the highest enrollment, at most six. Public endpoint.
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Popular classes retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/popular [get]
func (c *ClassController) GetPopularClasses(ctx *gin.Context) {
	classes, err := c.classService.GetPopularClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// GetClassByID retrieves a single offering
// @Summary Get class by ID
// @Description Retrieves a specific class offering by its ID
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid class ID")
		return
	}

	class, err := c.classService.GetClassByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      class,
		Timestamp: time.Now(),
	})
}

// GetMyClasses lists the offerings owned by an instructor
// @Summary List an instructor's classes
// @Description Retrieves the offerings owned by the instructor email. The email must match the caller's token subject.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param email path string true "Instructor email"
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "Classes retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Email does not match token subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/instructor/{email} [get]
func (c *ClassController) GetMyClasses(ctx *gin.Context) {
	classes, err := c.classService.GetClassesByInstructor(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      classes,
		Timestamp: time.Now(),
	})
}

// UpdateClass applies a partial update to an offering
// @Summary Update a class offering
// @Description Applies a partial-field merge to an offering. Only the owning instructor can modify it; fields absent from the body are left untouched.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Caller does not own this class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [patch]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid class ID")
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid class data", err)
		return
	}

	err = c.classService.UpdateClass(ctx, id, middleware.CallerEmail(ctx), req.Name, req.PriceCents, req.AvailableSeats)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "class updated",
		Timestamp: time.Now(),
	})
}

// UpdateStatus records the admin's moderation decision
// @Summary Moderate a class offering
// @Description Approves or denies a pending offering. The decision is carried in the request body and must be either approve or deny. Admin only.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateStatusRequest true "Moderation decision"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid decision value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/status [patch]
func (c *ClassController) UpdateStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid class ID")
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid status decision", err)
		return
	}

	status, err := c.classService.ApplyStatusDecision(ctx, id, models.StatusDecision(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"status": status,
		},
		Timestamp: time.Now(),
	})
}

// SetFeedback attaches an admin note to an offering
// @Summary Attach feedback to a class
// @Description Attaches a moderation note to an offering. Admin only.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.FeedbackRequest true "Feedback note"
// @Success 200 {object} dto.APIResponse "Feedback recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/feedback [patch]
func (c *ClassController) SetFeedback(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid class ID")
		return
	}

	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid feedback data", err)
		return
	}

	if err := c.classService.SetFeedback(ctx, id, req.Feedback); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "feedback recorded",
		Timestamp: time.Now(),
	})
}
