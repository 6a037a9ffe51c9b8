// Package spreadsheet handles the Excel workbooks used by bulk provisioning:
// the upload template, the admin's uploaded user list, and the generated
// result sheet produced by the external password generator.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Template column order. The generator appends the password column.
var templateHeaders = []string{"user_id", "name", "email", "role", "phone", "department", "graduation_year"}

// ProvisionRow is one user row read from the generated workbook.
type ProvisionRow struct {
	UserID         string
	Name           string
	Email          string
	Role           string
	Phone          string
	Department     string
	GraduationYear int
	Password       string
}

// ReadProvisionRows reads the generated workbook and returns one row per user.
// The first row must be a header; unknown columns are ignored.
func ReadProvisionRows(path string) ([]ProvisionRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	colIndex := map[string]int{}
	for i, h := range rows[0] {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"user_id", "name", "email", "role", "password"} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("workbook is missing required column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []ProvisionRow
	for _, row := range rows[1:] {
		r := ProvisionRow{
			UserID:     cell(row, "user_id"),
			Name:       cell(row, "name"),
			Email:      strings.ToLower(cell(row, "email")),
			Role:       strings.ToLower(cell(row, "role")),
			Phone:      cell(row, "phone"),
			Department: cell(row, "department"),
			Password:   cell(row, "password"),
		}
		if year := cell(row, "graduation_year"); year != "" {
			if y, err := strconv.Atoi(year); err == nil {
				r.GraduationYear = y
			}
		}
		// Skip fully empty trailing rows rather than reporting them as errors.
		if r.UserID == "" && r.Email == "" && r.Name == "" {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}

// WriteTemplate writes the upload template workbook: a header row plus one
// sample row showing the expected values.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	sample := []interface{}{"21CS042", "Priya Sharma", "priya.sharma@college.edu", "student", "9876543210", "CSE", 2025}
	for i, v := range sample {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write template workbook: %w", err)
	}
	return nil
}
