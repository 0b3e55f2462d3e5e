package usecase

import (
	"context"
	"io"

	"adlytics/domain/dto"
	"adlytics/domain/repository"
	"adlytics/infrastructure/configuration"
	"adlytics/infrastructure/filecsv"
	"adlytics/infrastructure/logger"
	"adlytics/infrastructure/realtime"
)

// IUploadUsecase validates and streams CSV uploads, reporting
// progress over the event hub as the body goes out.
type IUploadUsecase interface {
	UploadCSV(ctx context.Context, filename string, size int64, content io.Reader) (*dto.UploadAccepted, error)
}

type uploadUsecase struct {
	uploadAPI repository.IUploadAPI
	poller    IQueuePoller
	hub       *realtime.Hub
}

func NewUploadUsecase(uploadAPI repository.IUploadAPI, poller IQueuePoller, hub *realtime.Hub) IUploadUsecase {
	return &uploadUsecase{uploadAPI: uploadAPI, poller: poller, hub: hub}
}

// UploadCSV rejects invalid files locally before any bytes leave the
// machine, then streams the body with progress callbacks.
func (u *uploadUsecase) UploadCSV(ctx context.Context, filename string, size int64, content io.Reader) (*dto.UploadAccepted, error) {
	if err := filecsv.Validate(filename, size, configuration.C.Upload.MaxSizeMB); err != nil {
		return nil, err
	}

	accepted, err := u.uploadAPI.UploadCSV(ctx, filename, size, content, func(percent int) {
		u.hub.BroadcastUploadProgress(filename, percent)
	})
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"filename": filename,
			"error":    err,
		}).Error("CSV upload failed")
		return nil, err
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"filename": filename,
		"id":       accepted.ID,
	}).Info("CSV upload accepted")
	u.poller.RefreshNow(ctx)
	return accepted, nil
}
