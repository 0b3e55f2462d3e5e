package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adlytics/domain/model"
	"adlytics/infrastructure/logger"
	"adlytics/usecase"
)

type IOAuthCallbackHandler interface {
	Callback(c *gin.Context)
	Status(c *gin.Context)
}

type OAuthCallbackHandler struct {
	oauthUsecase usecase.IOAuthUsecase
}

func NewOAuthCallbackHandler(oauthUsecase usecase.IOAuthUsecase) IOAuthCallbackHandler {
	return &OAuthCallbackHandler{oauthUsecase: oauthUsecase}
}

// Callback lands the provider redirect. The outcome is derived from
// the query parameters alone, so a callback arriving after a restart
// still resolves. The UI holds the result on screen for delay_ms
// before navigating to redirect.
func (callbackHandler *OAuthCallbackHandler) Callback(c *gin.Context) {
	var params model.CallbackParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while binding callback params")
		params = model.CallbackParams{}
	}

	outcome := callbackHandler.oauthUsecase.HandleCallback(c.Request.Context(), params)

	status := http.StatusOK
	if !outcome.Succeeded() {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"status":   outcome.Status,
		"message":  outcome.Message,
		"account":  outcome.Account,
		"redirect": outcome.Redirect,
		"delay_ms": outcome.Delay.Milliseconds(),
	})
}

func (callbackHandler *OAuthCallbackHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": callbackHandler.oauthUsecase.Status()})
}
