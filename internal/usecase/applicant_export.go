package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

var applicantColumns = []string{
	"name",
	"email",
	"phone_number",
	"summary",
	"skills",
	"languages",
	"latest_experience",
	"latest_education",
	"applied_at",
}

var applicantHeaderNames = map[string]string{
	"name":              "NAME",
	"email":             "EMAIL",
	"phone_number":      "PHONE NUMBER",
	"summary":           "SUMMARY",
	"skills":            "SKILLS",
	"languages":         "LANGUAGES",
	"latest_experience": "LATEST EXPERIENCE",
	"latest_education":  "LATEST EDUCATION",
	"applied_at":        "APPLIED AT",
}

// applicantRows flattens applicants into one row of cells per applicant,
// ordered like applicantColumns.
func applicantRows(applicants []domain.Applicant) [][]string {
	rows := make([][]string, 0, len(applicants))
	for _, a := range applicants {
		p := a.Profile
		if p == nil {
			p = &domain.Profile{}
		}

		skills := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			skills = append(skills, fmt.Sprintf("%s (%s)", s.Name, s.Level))
		}
		languages := make([]string, 0, len(p.Languages))
		for _, l := range p.Languages {
			languages = append(languages, fmt.Sprintf("%s (%s)", l.Name, l.Level))
		}

		var experience, education string
		if n := len(p.Experiences); n > 0 {
			e := p.Experiences[n-1]
			experience = fmt.Sprintf("%s at %s (%s - %s)", e.JobTitle, e.Company, e.StartDate, e.EndDate)
		}
		if n := len(p.Educations); n > 0 {
			e := p.Educations[n-1]
			education = fmt.Sprintf("%s %s, %s (%s)", e.Programme, e.Major, e.InstituteName, e.CompletionYear)
		}

		var appliedAt string
		if !a.AppliedAt.IsZero() {
			appliedAt = a.AppliedAt.UTC().Format(time.RFC3339)
		}

		rows = append(rows, []string{
			a.Employee.Name,
			a.Employee.Email,
			a.Employee.PhoneNumber,
			p.Summary,
			strings.Join(skills, "; "),
			strings.Join(languages, "; "),
			experience,
			education,
			appliedAt,
		})
	}
	return rows
}

func exportApplicantsExcel(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, col := range applicantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, applicantHeaderNames[col])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(applicantColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range applicantColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportApplicantsCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(applicantColumns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}
