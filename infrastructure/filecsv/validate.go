package filecsv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adlytics/infrastructure/logger"
)

// Validation errors are rejected locally, before any network call.
var (
	ErrNotCSV   = errors.New("please upload a CSV file")
	ErrTooLarge = errors.New("file size exceeds limit")
	ErrEmpty    = errors.New("file is empty")
)

// Validate checks an upload candidate against the local rules: .csv
// extension, non-empty, and within the configured size cap.
func Validate(filename string, size int64, maxSizeMB int64) error {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ErrNotCSV
	}
	if size <= 0 {
		return ErrEmpty
	}
	if size > maxSizeMB*1024*1024 {
		return fmt.Errorf("%w (%dMB)", ErrTooLarge, maxSizeMB)
	}
	return nil
}

// NewFile opens a local CSV for a command-line driven upload.
func NewFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}
	return file, nil
}
