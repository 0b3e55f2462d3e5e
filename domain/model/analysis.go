package model

import "time"

// JobStatus is the lifecycle of a backend analysis job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

func (s JobStatus) Active() bool { return s == JobPending || s == JobProcessing }

// AnalysisJob is a backend-owned CSV analysis. The client never
// mutates it except for optimistic removal on delete.
type AnalysisJob struct {
	ID          int64      `json:"id"`
	Filename    string     `json:"filename"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ResultsJSON string     `json:"results_json,omitempty"`
}

// QueueSnapshot is the full current view of in-progress jobs. Every
// poll tick replaces it wholesale; it is never patched field by field.
type QueueSnapshot struct {
	QueueCount int           `json:"queue_count"`
	Jobs       []AnalysisJob `json:"jobs"`
	FetchedAt  time.Time     `json:"fetched_at"`
}

// FileBlob carries a binary download (PDF report) back to the caller.
type FileBlob struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
