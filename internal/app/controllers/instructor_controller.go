package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/app/services"
	"github.com/mhasan/dancecamp/internal/middleware"
)

// InstructorController handles public instructor listings
type InstructorController struct {
	instructorService *services.InstructorService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService *services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// ListInstructors lists instructors with their catalog totals
// @Summary List instructors
// @Description Retrieves every instructor together with their class and enrollment totals. Instructors with no classes appear with zero totals. Public endpoint.
// @Tags instructors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.InstructorSummary} "Instructors retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [get]
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.ListInstructors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructors,
		Timestamp: time.Now(),
	})
}
