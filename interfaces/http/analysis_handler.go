package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adlytics/domain/dto"
	"adlytics/infrastructure/logger"
	"adlytics/usecase"
)

type IAnalysisHandler interface {
	History(c *gin.Context)
	Get(c *gin.Context)
	Results(c *gin.Context)
	Delete(c *gin.Context)
	DownloadPDF(c *gin.Context)
	DownloadPDFWithCharts(c *gin.Context)
	EmailReport(c *gin.Context)
}

type AnalysisHandler struct {
	analysisUsecase usecase.IAnalysisUsecase
}

func NewAnalysisHandler(analysisUsecase usecase.IAnalysisUsecase) IAnalysisHandler {
	return &AnalysisHandler{analysisUsecase: analysisUsecase}
}

func (analysisHandler *AnalysisHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	analyses, err := analysisHandler.analysisUsecase.History(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (analysisHandler *AnalysisHandler) Get(c *gin.Context) {
	id, err := analysisID(c)
	if err != nil {
		return
	}
	analysis, err := analysisHandler.analysisUsecase.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (analysisHandler *AnalysisHandler) Results(c *gin.Context) {
	id, err := analysisID(c)
	if err != nil {
		return
	}
	results, err := analysisHandler.analysisUsecase.Results(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (analysisHandler *AnalysisHandler) Delete(c *gin.Context) {
	id, err := analysisID(c)
	if err != nil {
		return
	}
	if err := analysisHandler.analysisUsecase.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted"})
}

func (analysisHandler *AnalysisHandler) DownloadPDF(c *gin.Context) {
	id, err := analysisID(c)
	if err != nil {
		return
	}
	blob, err := analysisHandler.analysisUsecase.DownloadPDF(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	writeBlob(c, blob.Name, blob.ContentType, blob.Data)
}

func (analysisHandler *AnalysisHandler) DownloadPDFWithCharts(c *gin.Context) {
	id, err := analysisID(c)
	if err != nil {
		return
	}
	var req dto.PDFWithChartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": "chart_images payload is invalid"})
		return
	}
	blob, err := analysisHandler.analysisUsecase.DownloadPDFWithCharts(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeBlob(c, blob.Name, blob.ContentType, blob.Data)
}

func (analysisHandler *AnalysisHandler) EmailReport(c *gin.Context) {
	id, err := analysisID(c)
	if err != nil {
		return
	}
	var req dto.EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email address is required"})
		return
	}
	if err := analysisHandler.analysisUsecase.EmailReport(c.Request.Context(), id, req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Report sent to %s", req.Email)})
}

func analysisID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return 0, err
	}
	return id, nil
}

func writeBlob(c *gin.Context, name, contentType string, data []byte) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}
