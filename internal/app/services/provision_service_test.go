package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/pkg/spreadsheet"
)

func TestValidateProvisionRow(t *testing.T) {
	valid := spreadsheet.ProvisionRow{
		UserID:   "21CS042",
		Name:     "Priya Sharma",
		Email:    "priya@college.edu",
		Role:     "student",
		Password: "generated123",
	}
	assert.NoError(t, validateProvisionRow(valid))

	missing := valid
	missing.Password = ""
	assert.Error(t, validateProvisionRow(missing))

	badRole := valid
	badRole.Role = "professor"
	assert.Error(t, validateProvisionRow(badRole))
}

func TestLimitedBuffer(t *testing.T) {
	buf := &limitedBuffer{max: 10}

	n, err := buf.Write([]byte("12345"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = buf.Write([]byte("678901"))
	assert.Error(t, err)

	// Earlier output is preserved after the cap is hit.
	assert.Equal(t, "12345", buf.buf.String())
}

func TestProvisionResult_ErrorSampleCap(t *testing.T) {
	result := &dto.ProvisionResult{}

	for i := 0; i < 12; i++ {
		result.AddRowError(dto.RowError{Row: i + 2, Message: "duplicate email"})
		result.AddEmailError(dto.RowError{Row: i + 2, Message: "smtp timeout"})
	}

	// Tallies count everything; the echoed samples stay capped.
	assert.Equal(t, 12, result.DBErrors)
	assert.Equal(t, 12, result.EmailsFailed)
	assert.Len(t, result.Errors, dto.MaxReportedRowErrors)
	assert.Len(t, result.EmailErrors, dto.MaxReportedRowErrors)
}
