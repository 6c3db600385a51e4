package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateQueryOutputDir creates a directory named after the query id
func (om *OutputManager) CreateQueryOutputDir(queryID string) (string, error) {
	queryDir := filepath.Join(om.BaseOutputDir, filepath.Base(queryID))

	if err := os.MkdirAll(queryDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create query output directory: %w", err)
	}

	return queryDir, nil
}

// GetOutputFilePath generates a full path for an output file
func (om *OutputManager) GetOutputFilePath(queryID, fileName string) (string, error) {
	queryDir, err := om.CreateQueryOutputDir(queryID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	return filepath.Join(queryDir, filepath.Base(fileName)), nil
}

// ResolveFile returns the path of an existing output file, or an error if
// it is missing.
func (om *OutputManager) ResolveFile(queryID, fileName string) (string, error) {
	path := filepath.Join(om.BaseOutputDir, filepath.Base(queryID), filepath.Base(fileName))
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// GetDownloadURL generates a download URL for a file
func (om *OutputManager) GetDownloadURL(queryID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", queryID, filepath.Base(fileName))
}

// GetFileType determines the file type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}
