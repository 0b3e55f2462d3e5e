package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adlytics/domain/dto"
	"adlytics/domain/model"
	"adlytics/infrastructure/logger"
	"adlytics/usecase"
)

type IAccountHandler interface {
	List(c *gin.Context)
	Initiate(c *gin.Context)
	Disconnect(c *gin.Context)
	Sync(c *gin.Context)
	Campaigns(c *gin.Context)
}

type AccountHandler struct {
	oauthUsecase usecase.IOAuthUsecase
}

func NewAccountHandler(oauthUsecase usecase.IOAuthUsecase) IAccountHandler {
	return &AccountHandler{oauthUsecase: oauthUsecase}
}

func (accountHandler *AccountHandler) List(c *gin.Context) {
	accounts, err := accountHandler.oauthUsecase.Accounts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "platforms": model.Platforms})
}

func (accountHandler *AccountHandler) Initiate(c *gin.Context) {
	var req dto.OAuthInitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": "platform is required"})
		return
	}

	resp, err := accountHandler.oauthUsecase.Initiate(c.Request.Context(), model.Platform(req.Platform))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Disconnect drops an account only when confirm=true accompanies the
// request; the UI sends it after the user acknowledges the dialog.
func (accountHandler *AccountHandler) Disconnect(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}
	confirmed := c.Query("confirm") == "true"

	if err := accountHandler.oauthUsecase.Disconnect(c.Request.Context(), id, confirmed); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account disconnected"})
}

func (accountHandler *AccountHandler) Sync(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	if err := accountHandler.oauthUsecase.Sync(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sync started"})
}

func (accountHandler *AccountHandler) Campaigns(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	campaigns, err := accountHandler.oauthUsecase.Campaigns(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}
