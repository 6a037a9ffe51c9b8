package spreadsheet

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, headers []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadProvisionRows(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"user_id", "name", "email", "role", "phone", "department", "graduation_year", "password"},
		[][]interface{}{
			{"21CS042", "Priya Sharma", "Priya.Sharma@College.edu", "Student", "9876543210", "CSE", 2025, "pw1"},
			{"AL001", "Rahul Verma", "rahul@college.edu", "alumni", "", "", "", "pw2"},
		})

	rows, err := ReadProvisionRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Email and role are normalized to lower case.
	assert.Equal(t, "priya.sharma@college.edu", rows[0].Email)
	assert.Equal(t, "student", rows[0].Role)
	assert.Equal(t, 2025, rows[0].GraduationYear)
	assert.Equal(t, "pw1", rows[0].Password)

	assert.Equal(t, "AL001", rows[1].UserID)
	assert.Zero(t, rows[1].GraduationYear)
}

func TestReadProvisionRows_SkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"user_id", "name", "email", "role", "password"},
		[][]interface{}{
			{"21CS042", "Priya Sharma", "priya@college.edu", "student", "pw1"},
			{"", "", "", "", ""},
		})

	rows, err := ReadProvisionRows(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReadProvisionRows_MissingColumn(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"user_id", "name", "email", "role"},
		[][]interface{}{{"21CS042", "Priya Sharma", "priya@college.edu", "student"}})

	_, err := ReadProvisionRows(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestReadProvisionRows_NoDataRows(t *testing.T) {
	path := writeWorkbook(t, []string{"user_id", "name", "email", "role", "password"}, nil)

	_, err := ReadProvisionRows(path)
	assert.Error(t, err)
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, templateHeaders, rows[0][:len(templateHeaders)])
}
