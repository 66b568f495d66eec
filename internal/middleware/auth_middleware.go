package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appAuth "github.com/mhasan/dancecamp/internal/app/auth"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/models/dto"
	"github.com/mhasan/dancecamp/internal/pkg/auth"
)

// ContextEmailKey is the gin context key carrying the authenticated email
const ContextEmailKey = "email"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService   *auth.JWTService
	authzService *appAuth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authzService *appAuth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		authzService: authzService,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextEmailKey, claims.Email)

		c.Next()
	}
}

// RoleRequired middleware checks the caller's stored role against the
// required one. The lookup goes to the account store on every request so a
// revoked role locks the caller out immediately.
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Caller identity not found")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if err := m.authzService.RequireRole(c.Request.Context(), email, requiredRole); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// SelfRequired middleware ensures the email path parameter matches the
// authenticated caller. Applied to every email-scoped route.
func (m *AuthMiddleware) SelfRequired(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" || c.Param(paramName) != email {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You can only access your own resources")

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// CallerEmail returns the authenticated email set by JWTAuth, or ""
func CallerEmail(c *gin.Context) string {
	value, exists := c.Get(ContextEmailKey)
	if !exists {
		return ""
	}

	email, ok := value.(string)
	if !ok {
		return ""
	}

	return email
}
