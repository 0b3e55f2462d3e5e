package dto

// GenerateReportRequest builds a report either from a connected
// account or from a finished CSV analysis.
type GenerateReportRequest struct {
	SourceType string `json:"source_type"` // account | csv
	AccountID  int64  `json:"account_id,omitempty"`
	AnalysisID int64  `json:"analysis_id,omitempty"`
	DateRange  string `json:"date_range,omitempty"`
}

// ReportStatusResponse is the polling payload for report generation.
type ReportStatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
