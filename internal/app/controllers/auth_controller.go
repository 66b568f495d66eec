package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/pkg/auth"
)

// AuthController handles token issuance
type AuthController struct {
	jwtService *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		jwtService: jwtService,
	}
}

// IssueToken issues a bearer token for an identity claim
// @Summary Issue an access token
// @Description Issues a signed bearer token for the given email. The email is an identity claim established by the frontend's sign-in flow.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.IssueTokenRequest true "Identity claim"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var req dto.IssueTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, "Invalid token request", err)
		return
	}

	token, expiresIn, err := c.jwtService.IssueToken(req.Email)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to issue token")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.TokenResponse{
			Token:     token,
			ExpiresIn: expiresIn,
		},
		Timestamp: time.Now(),
	})
}
