package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/app/services"
	"github.com/mhasan/dancecamp/internal/middleware"
	"github.com/mhasan/dancecamp/internal/pkg/payment"
)

// PaymentController handles payment intents, settlement and history
type PaymentController struct {
	settlementService *services.SettlementService
	currency          string
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(settlementService *services.SettlementService, currency string) *PaymentController {
	return &PaymentController{
		settlementService: settlementService,
		currency:          currency,
	}
}

// CreateIntent creates a client-confirmable charge handle
// @Summary Create a payment intent
// @Description Creates a card payment intent over the given amount and returns its client secret for the frontend to confirm.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateIntentRequest true "Charge amount in minor units"
// @Success 200 {object} dto.APIResponse{data=dto.CreateIntentResponse} "Intent created"
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/intent [post]
func (c *PaymentController) CreateIntent(ctx *gin.Context) {
	var req dto.CreateIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid intent data", err)
		return
	}

	intent, err := c.settlementService.CreateIntent(ctx, req.AmountCents, c.currency)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CreateIntentResponse{
			PaymentIntentID: intent.ID,
			ClientSecret:    intent.ClientSecret,
		},
		Timestamp: time.Now(),
	})
}

// Settle applies a confirmed charge
// @Summary Settle a confirmed charge
// @Description Records the payment, clears the referenced cart entries and enrolls the caller into each class that still has a seat, all in one transaction. Settling the same charge id twice returns the original outcome.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SettleRequest true "Confirmed charge and settlement targets"
// @Success 200 {object} dto.APIResponse{data=models.SettlementResult} "Settlement applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid charge"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Unknown class id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments [post]
func (c *PaymentController) Settle(ctx *gin.Context) {
	var req dto.SettleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid settlement data", err)
		return
	}

	charge := payment.ConfirmedCharge{
		ID:          req.ChargeID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	}

	result, err := c.settlementService.Settle(ctx, middleware.CallerEmail(ctx), charge, req.ClassIDs, req.CartEntryIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ListPayments lists a student's payment history
// @Summary List payment history
// @Description Retrieves the payments of the student email, newest first. The email must match the caller's token subject.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Email does not match token subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{email} [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	payments, err := c.settlementService.ListPayments(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payments,
		Timestamp: time.Now(),
	})
}

// ListEnrollments lists the classes a student has paid for
// @Summary List enrolled classes
// @Description Retrieves the classes the student email has paid for, each paired with its payment date. The email must match the caller's token subject.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Email does not match token subject"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/enrollments/{email} [get]
func (c *PaymentController) ListEnrollments(ctx *gin.Context) {
	enrollments, err := c.settlementService.ListEnrollments(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}
