package usecase

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const applicantSheet = "Applicants"

var applicantHeaders = []string{"APPLICATION ID", "NAME", "EMAIL", "APPLIED AT", "MEMBER SINCE"}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// exportApplicantsExcel generates an Excel file listing a job's applicants
func exportApplicantsExcel(job *domain.Job, apps []domain.Application) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicantSheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range applicantHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(applicantSheet, cell, header)
	}

	// Dark blue header with white text
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("header style: %w", err)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(applicantHeaders), 1)
	f.SetCellStyle(applicantSheet, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		row := []any{
			app.ID,
			derefString(app.ApplicantName),
			derefString(app.ApplicantEmail),
			app.AppliedAt.UTC().Format(time.RFC3339),
			formatOptionalTime(app.ApplicantJoinedAt),
		}
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(applicantSheet, cell, value)
		}
	}

	for i := range applicantHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(applicantSheet, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("applicants_%d_%s_%s.xlsx", job.ID, slug(job.Title), time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func slug(s string) string {
	s = strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "_"), "_")
	if len(s) > 40 {
		s = strings.TrimRight(s[:40], "_")
	}
	if s == "" {
		return "job"
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
