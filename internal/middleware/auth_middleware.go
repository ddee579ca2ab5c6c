package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hndoan/Lorises/internal/dto"
	"github.com/hndoan/Lorises/internal/service"
	"github.com/rs/zerolog/log"
)

const userIDKey = "user_id"

// UserID returns the authenticated user id placed in the context by
// RequireAuth.
func UserID(ctx *gin.Context) (uint, bool) {
	val, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

// RequireAuth parses the bearer token and stores the caller's user id in the
// request context. Requests without a valid token never reach the handler.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing authorization token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

// RequireReviewer allows only callers holding reviewer, admin, or super_admin
// capability. It must run after RequireAuth.
func RequireReviewer(caps service.CapabilityService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := UserID(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		allowed, err := caps.CanReview(userID)
		if err != nil {
			log.Error().Err(err).Uint("userID", userID).Msg("RequireReviewer: capability check failed")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check permissions"})
			return
		}
		if !allowed {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Reviewer access required"})
			return
		}
		ctx.Next()
	}
}

// RequireAdmin allows only admin or super_admin callers. It must run after
// RequireAuth.
func RequireAdmin(caps service.CapabilityService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := UserID(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		allowed, err := caps.IsAdmin(userID)
		if err != nil {
			log.Error().Err(err).Uint("userID", userID).Msg("RequireAdmin: capability check failed")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check permissions"})
			return
		}
		if !allowed {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}
