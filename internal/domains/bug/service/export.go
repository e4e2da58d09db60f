package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"bugtracker-backend/internal/domains/bug/model"
)

const exportSheetName = "Bugs"

var exportHeaders = []string{
	"ID",
	"Title",
	"Description",
	"Severity",
	"Status",
	"Assigned To",
	"Priority",
	"Reproducible",
	"Tags",
	"Age (days)",
	"Stale",
	"Created At",
	"Updated At",
}

// ExportBugs dùng lại ListBugs để filter / sort giống hệt GET /bugs
func (s *BugService) ExportBugs(ctx context.Context, req model.ListBugsRequest) (*excelize.File, error) {
	list, err := s.ListBugs(ctx, req)
	if err != nil {
		return nil, err
	}

	f, err := buildBugsWorkbook(list.Bugs)
	if err != nil {
		return nil, model.NewUnexpectedError("build export workbook", err)
	}

	return f, nil
}

func buildBugsWorkbook(bugs []model.BugResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	// Row 1: Header
	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
		_ = f.SetCellStyle(exportSheetName, "A1", lastCol+"1", headerStyle)
	}

	// Data rows từ row 2
	for i, b := range bugs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			b.ID.String(),
			b.Title,
			b.Description,
			string(b.Severity),
			string(b.Status),
			b.AssignedTo,
			b.Priority,
			b.Reproducible,
			strings.Join(b.Tags, ", "),
			b.Age,
			b.IsStale,
			b.CreatedAt.Format(time.RFC3339),
			b.UpdatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
