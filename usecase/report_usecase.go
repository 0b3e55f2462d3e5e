package usecase

import (
	"context"
	"fmt"

	"adlytics/domain/dto"
	"adlytics/domain/repository"
)

// IReportUsecase wraps account-driven report generation.
type IReportUsecase interface {
	Generate(ctx context.Context, req dto.GenerateReportRequest) (*dto.ReportStatusResponse, error)
	Status(ctx context.Context, reportID int64) (*dto.ReportStatusResponse, error)
}

type reportUsecase struct {
	reportAPI repository.IReportAPI
}

func NewReportUsecase(reportAPI repository.IReportAPI) IReportUsecase {
	return &reportUsecase{reportAPI: reportAPI}
}

func (u *reportUsecase) Generate(ctx context.Context, req dto.GenerateReportRequest) (*dto.ReportStatusResponse, error) {
	switch req.SourceType {
	case "account":
		if req.AccountID == 0 {
			return nil, fmt.Errorf("account_id is required for account reports")
		}
	case "csv":
		if req.AnalysisID == 0 {
			return nil, fmt.Errorf("analysis_id is required for csv reports")
		}
	default:
		return nil, fmt.Errorf("unknown source_type %q", req.SourceType)
	}
	return u.reportAPI.Generate(ctx, req)
}

func (u *reportUsecase) Status(ctx context.Context, reportID int64) (*dto.ReportStatusResponse, error) {
	return u.reportAPI.Status(ctx, reportID)
}
