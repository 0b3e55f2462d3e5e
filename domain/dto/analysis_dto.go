package dto

import "time"

// AnalysisDTO mirrors one backend analysis record. The queue-status
// endpoint populates Filename; history rows carry CSVFilename.
type AnalysisDTO struct {
	ID          int64      `json:"id"`
	Filename    string     `json:"filename,omitempty"`
	CSVFilename string     `json:"csv_filename,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ResultsJSON string     `json:"results_json,omitempty"`
}

// Name returns whichever filename field the backend populated.
func (a AnalysisDTO) Name() string {
	if a.Filename != "" {
		return a.Filename
	}
	return a.CSVFilename
}

// QueueStatusResponse is the payload of GET /api/upload/queue-status.
type QueueStatusResponse struct {
	QueueCount int           `json:"queue_count"`
	Analyses   []AnalysisDTO `json:"analyses"`
}

// HistoryOptions encodes to the history query string.
type HistoryOptions struct {
	Limit int `url:"limit"`
}

// UploadAccepted is returned once a CSV upload has been queued.
type UploadAccepted struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// EmailReportRequest sends a finished report to an address.
type EmailReportRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PDFWithChartsRequest embeds rendered chart images into the PDF.
type PDFWithChartsRequest struct {
	ChartImages []string `json:"chart_images"`
}
