package usecase

import (
	"context"

	"adlytics/domain/dto"
	"adlytics/domain/model"
	"adlytics/domain/repository"
	"adlytics/infrastructure/logger"
)

// IAnalysisUsecase exposes analysis history, results and exports.
type IAnalysisUsecase interface {
	History(ctx context.Context, limit int) ([]dto.AnalysisDTO, error)
	Get(ctx context.Context, id int64) (*dto.AnalysisDTO, error)
	Results(ctx context.Context, id int64) (map[string]any, error)
	Delete(ctx context.Context, id int64) error
	DownloadPDF(ctx context.Context, id int64) (*model.FileBlob, error)
	DownloadPDFWithCharts(ctx context.Context, id int64, req dto.PDFWithChartsRequest) (*model.FileBlob, error)
	EmailReport(ctx context.Context, id int64, req dto.EmailReportRequest) error
}

type analysisUsecase struct {
	analysisAPI repository.IAnalysisAPI
}

func NewAnalysisUsecase(analysisAPI repository.IAnalysisAPI) IAnalysisUsecase {
	return &analysisUsecase{analysisAPI: analysisAPI}
}

func (u *analysisUsecase) History(ctx context.Context, limit int) ([]dto.AnalysisDTO, error) {
	return u.analysisAPI.History(ctx, dto.HistoryOptions{Limit: limit})
}

func (u *analysisUsecase) Get(ctx context.Context, id int64) (*dto.AnalysisDTO, error) {
	return u.analysisAPI.Get(ctx, id)
}

func (u *analysisUsecase) Results(ctx context.Context, id int64) (map[string]any, error) {
	return u.analysisAPI.Results(ctx, id)
}

func (u *analysisUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.analysisAPI.Delete(ctx, id); err != nil {
		return err
	}
	logger.GetLogger().WithField("id", id).Info("Analysis deleted")
	return nil
}

func (u *analysisUsecase) DownloadPDF(ctx context.Context, id int64) (*model.FileBlob, error) {
	return u.analysisAPI.DownloadPDF(ctx, id)
}

func (u *analysisUsecase) DownloadPDFWithCharts(ctx context.Context, id int64, req dto.PDFWithChartsRequest) (*model.FileBlob, error) {
	return u.analysisAPI.DownloadPDFWithCharts(ctx, id, req)
}

func (u *analysisUsecase) EmailReport(ctx context.Context, id int64, req dto.EmailReportRequest) error {
	return u.analysisAPI.EmailReport(ctx, id, req)
}
