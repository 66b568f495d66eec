package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/middleware"
)

// respondBindingError writes the standard 400 envelope for a failed request
// binding, with per-field messages when the failure came from validation.
func respondBindingError(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	errorDetail = errorDetail.WithDetails(middleware.BindingErrorDetails(err))
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// respondInvalidID writes the standard 400 envelope for a non-numeric path id
func respondInvalidID(ctx *gin.Context, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	errorDetail = errorDetail.WithDetails("ID must be a valid number")
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
