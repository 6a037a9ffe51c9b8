package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/pkg/apperrors"
	"github.com/placenet/portal/internal/pkg/auth"
)

// Context keys for the authenticated identity.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware verifies bearer tokens and enforces the role policy.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and attaches the identity to the
// request context. Every failure is a 401 with a distinct machine-readable
// code; verification never produces a 500.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeNoToken, "Authentication required")))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeNoToken, "Authentication required")))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				detail := dto.NewErrorDetail(dto.ErrorCodeTokenExpired, "Token has expired")
				if claims != nil && claims.ExpiresAt != nil {
					detail = detail.WithDetails(gin.H{"expiredAt": claims.ExpiresAt.Time})
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			case errors.Is(err, apperrors.ErrTokenNotActive):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeTokenNotActive, "Token is not active yet")))
			case errors.Is(err, apperrors.ErrTokenInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeTokenInvalid, "Token verification failed")))
			}
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given set. Must run
// after JWTAuth.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeNoToken, "Authentication required")))
			return
		}

		roleStr, _ := roleValue.(string)
		for _, allowed := range roles {
			if models.Role(roleStr) == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden,
				"You don't have sufficient permissions for this operation")))
	}
}

// Authorize gates a route by the declarative policy table for the named
// operation.
func (m *AuthMiddleware) Authorize(op authz.Operation) gin.HandlerFunc {
	return m.RequireRoles(authz.RolesFor(op)...)
}

// Identity returns the authenticated identity attached by JWTAuth.
func Identity(c *gin.Context) (userID string, role models.Role, ok bool) {
	userValue, exists := c.Get(ContextUserID)
	if !exists {
		return "", "", false
	}
	roleValue, exists := c.Get(ContextRole)
	if !exists {
		return "", "", false
	}

	userID, _ = userValue.(string)
	roleStr, _ := roleValue.(string)
	return userID, models.Role(roleStr), userID != ""
}
