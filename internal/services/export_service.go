package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportGradebook renders every submission against an activity as an Excel
// workbook: one row per student with score and completion state.
func (s *exportService) ExportGradebook(ctx context.Context, activityID uint) ([]byte, error) {
	activity, err := s.repo.Activity().GetByID(ctx, activityID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrActivityNotFound
		}
		return nil, NewIOError("get activity", err)
	}

	records, _, err := s.repo.Submission().ListByActivity(ctx, activityID, repositories.SubmissionFilters{})
	if err != nil {
		return nil, NewIOError("list submissions", err)
	}

	f := excelize.NewFile()
	sheetName := "Gradebook"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Student ID", "Status", "Score", "Completed", "Last Update",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, record := range records {
		row := []interface{}{
			record.StudentID,
			string(record.Status),
			record.Score,
			record.Completed,
			record.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Gradebook exported",
		"activity_id", activityID,
		"title", activity.Title,
		"rows", len(records))

	return buf.Bytes(), nil
}
