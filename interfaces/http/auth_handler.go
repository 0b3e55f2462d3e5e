package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"adlytics/domain/model"
	"adlytics/infrastructure/logger"
	"adlytics/usecase"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

type IAuthHandler interface {
	Login(c *gin.Context)
	Register(c *gin.Context)
	Logout(c *gin.Context)
	Session(c *gin.Context)
}

type AuthHandler struct {
	sessionUsecase usecase.ISessionUsecase
}

func NewAuthHandler(sessionUsecase usecase.ISessionUsecase) IAuthHandler {
	return &AuthHandler{sessionUsecase: sessionUsecase}
}

func (authHandler *AuthHandler) Login(c *gin.Context) {
	var req model.ReqLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error())})
		return
	}

	sess, err := authHandler.sessionUsecase.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "state": model.StateAuthenticated.String()})
}

func (authHandler *AuthHandler) Register(c *gin.Context) {
	var req model.ReqRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error())})
		return
	}

	sess, err := authHandler.sessionUsecase.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "state": model.StateAuthenticated.String()})
}

func (authHandler *AuthHandler) Logout(c *gin.Context) {
	authHandler.sessionUsecase.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"state": model.StateUnauthenticated.String()})
}

// Session reports the current tri-state. It waits for restoration to
// settle so the UI never sees a transient unauthenticated answer.
func (authHandler *AuthHandler) Session(c *gin.Context) {
	state := authHandler.sessionUsecase.AwaitSettled(c.Request.Context())
	sess, _ := authHandler.sessionUsecase.Current()
	c.JSON(http.StatusOK, gin.H{"session": sess, "state": state.String()})
}
