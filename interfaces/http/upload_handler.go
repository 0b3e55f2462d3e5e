package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adlytics/infrastructure/logger"
	"adlytics/usecase"
)

type IUploadHandler interface {
	UploadCSV(c *gin.Context)
}

type UploadHandler struct {
	uploadUsecase usecase.IUploadUsecase
}

func NewUploadHandler(uploadUsecase usecase.IUploadUsecase) IUploadHandler {
	return &UploadHandler{uploadUsecase: uploadUsecase}
}

// UploadCSV streams the multipart file through to the backend; the
// body is never buffered whole in memory.
func (uploadHandler *UploadHandler) UploadCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	accepted, err := uploadHandler.uploadUsecase.UploadCSV(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accepted)
}
