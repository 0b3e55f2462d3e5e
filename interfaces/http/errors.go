package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"adlytics/domain/model"
	"adlytics/infrastructure/filecsv"
)

// writeError maps usecase failures onto HTTP responses. Backend
// statuses pass through untouched so the UI sees what the backend
// said; transport failures become 502.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrUnsupportedPlatform):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, filecsv.ErrNotCSV), errors.Is(err, filecsv.ErrTooLarge), errors.Is(err, filecsv.ErrEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if apiErr, ok := model.AsApiError(err); ok {
			if apiErr.Status == 0 {
				c.JSON(http.StatusBadGateway, gin.H{"error": "backend unreachable"})
				return
			}
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Detail})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
