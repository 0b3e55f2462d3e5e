package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adlytics/domain/model"
	"adlytics/usecase"
)

// Auth guards routes that need an authenticated session. It waits for
// session restoration to settle first, so a request racing startup is
// answered from the real state instead of bouncing to login.
func Auth(sessionUsecase usecase.ISessionUsecase) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		state := sessionUsecase.AwaitSettled(ctx.Request.Context())
		if state == model.StateLoading {
			// The request died before restoration settled. No verdict
			// exists yet, so no login redirect either.
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Session not yet settled",
			})
			return
		}
		if state != model.StateAuthenticated {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Not authenticated",
				"redirect": "/login",
			})
			return
		}

		sess, _ := sessionUsecase.Current()
		if sess != nil {
			ctx.Set("user_id", sess.UserID)
			ctx.Set("email", sess.Email)
		}
		ctx.Next()
	}
}
