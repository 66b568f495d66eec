package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/app/services"
	"github.com/mhasan/dancecamp/internal/middleware"
)

// CartController handles a student's selected classes
type CartController struct {
	cartService *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// SelectClass adds a class to the caller's cart
// @Summary Select a class
// @Description Adds a class to the calling student's cart. Selecting a class that is already in the cart keeps the existing entry and reports it.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectClassRequest true "Class to select"
// @Success 201 {object} dto.APIResponse{data=models.CartEntry} "Class selected"
// @Success 200 {object} dto.APIResponse "Class already selected"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart [post]
func (c *CartController) SelectClass(ctx *gin.Context) {
	var req dto.SelectClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid selection data", err)
		return
	}

	entry, created, err := c.cartService.SelectClass(ctx, middleware.CallerEmail(ctx), req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !created {
		ctx.JSON(http.StatusOK, dto.APIResponse{
			Message:   "class already selected",
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      entry,
		Timestamp: time.Now(),
	})
}

// ListSelectedClasses lists the entries in a student's cart
// @Summary List selected classes
// @Description Retrieves the cart entries of the student email. The email must match the caller's token subject.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=[]models.CartEntry} "Cart entries retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Email does not match token subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/{email} [get]
func (c *CartController) ListSelectedClasses(ctx *gin.Context) {
	entries, err := c.cartService.ListSelectedClasses(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      entries,
		Timestamp: time.Now(),
	})
}

// RemoveEntry deletes a cart entry
// @Summary Remove a cart entry
// @Description Deletes a cart entry. Only the student who owns the entry can remove it.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cart entry ID"
// @Success 200 {object} dto.APIResponse "Entry removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid entry ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Entry belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/{id} [delete]
func (c *CartController) RemoveEntry(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondInvalidID(ctx, "Invalid cart entry ID")
		return
	}

	if err := c.cartService.RemoveEntry(ctx, id, middleware.CallerEmail(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message:   "entry removed",
		Timestamp: time.Now(),
	})
}
