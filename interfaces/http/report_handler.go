package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adlytics/domain/dto"
	"adlytics/infrastructure/logger"
	"adlytics/usecase"
)

type IReportHandler interface {
	Generate(c *gin.Context)
	Status(c *gin.Context)
}

type ReportHandler struct {
	reportUsecase usecase.IReportUsecase
}

func NewReportHandler(reportUsecase usecase.IReportUsecase) IReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (reportHandler *ReportHandler) Generate(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": "report request is invalid"})
		return
	}

	status, err := reportHandler.reportUsecase.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (reportHandler *ReportHandler) Status(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	status, err := reportHandler.reportUsecase.Status(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
