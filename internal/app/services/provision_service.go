package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/pkg/apperrors"
	"github.com/placenet/portal/internal/pkg/auth"
	"github.com/placenet/portal/internal/pkg/email"
	"github.com/placenet/portal/internal/pkg/filestore"
	"github.com/placenet/portal/internal/pkg/spreadsheet"
)

// maxGeneratorOutput bounds how much stdout/stderr the external password
// generator may produce before the run is aborted.
const maxGeneratorOutput = 1 << 20 // 1MB

// ProvisionConfig carries the tunables for one provisioning run.
type ProvisionConfig struct {
	GeneratorCommand string
	GeneratorTimeout time.Duration
	EmailSendDelay   time.Duration
}

// ProvisionService orchestrates the bulk user-provisioning batch: run the
// external password generator over an uploaded workbook, upsert each
// resulting row, and send credential emails. The batch is best effort:
// per-row failures are tallied, never fatal.
type ProvisionService struct {
	userRepo *repositories.UserRepository
	emailSvc email.EmailService
	store    *filestore.Store
	config   ProvisionConfig
	logger   zerolog.Logger
}

// NewProvisionService creates a new ProvisionService
func NewProvisionService(
	userRepo *repositories.UserRepository,
	emailSvc email.EmailService,
	store *filestore.Store,
	config ProvisionConfig,
	logger zerolog.Logger,
) *ProvisionService {
	return &ProvisionService{
		userRepo: userRepo,
		emailSvc: emailSvc,
		store:    store,
		config:   config,
		logger:   logger,
	}
}

// limitedBuffer collects process output up to a fixed cap and reports an
// error once the cap is exceeded.
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if l.buf.Len()+len(p) > l.max {
		return 0, fmt.Errorf("output exceeds %d bytes", l.max)
	}
	return l.buf.Write(p)
}

// runGenerator invokes the external password generator synchronously with a
// bounded timeout and a bounded output buffer. The generator receives the
// uploaded workbook path and the path it must write the result workbook to.
func (s *ProvisionService) runGenerator(ctx context.Context, inputPath, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.GeneratorTimeout)
	defer cancel()

	out := &limitedBuffer{max: maxGeneratorOutput}
	cmd := exec.CommandContext(ctx, s.config.GeneratorCommand, inputPath, outputPath)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: timed out after %s", apperrors.ErrGeneratorFailed, s.config.GeneratorTimeout)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("output", out.buf.String()).Msg("Password generator failed")
		return fmt.Errorf("%w: %v", apperrors.ErrGeneratorFailed, err)
	}
	return nil
}

func validateProvisionRow(row spreadsheet.ProvisionRow) error {
	if row.UserID == "" || row.Email == "" || row.Name == "" || row.Password == "" {
		return fmt.Errorf("missing required fields")
	}
	if !models.Role(row.Role).Valid() {
		return fmt.Errorf("invalid role %q", row.Role)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Run executes the full provisioning batch over a previously stored upload
// and returns the generated workbook name plus the aggregate result.
func (s *ProvisionService) Run(ctx context.Context, uploadName string) (string, *dto.ProvisionResult, error) {
	inputPath, err := s.store.Path(uploadName)
	if err != nil {
		return "", nil, apperrors.NewBadRequestError("Invalid upload file name")
	}

	generatedName := "generated_" + uploadName
	outputPath, err := s.store.Path(generatedName)
	if err != nil {
		return "", nil, apperrors.NewBadRequestError("Invalid upload file name")
	}

	if err := s.runGenerator(ctx, inputPath, outputPath); err != nil {
		return "", nil, err
	}

	rows, err := spreadsheet.ReadProvisionRows(outputPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrGeneratorFailed, err)
	}

	result := s.applyRows(ctx, rows)
	result.Success = true

	s.logger.Info().
		Int("totalProcessed", result.TotalProcessed).
		Int("insertedInDB", result.InsertedInDB).
		Int("updatedInDB", result.UpdatedInDB).
		Int("dbErrors", result.DBErrors).
		Int("emailsSent", result.EmailsSent).
		Int("emailsFailed", result.EmailsFailed).
		Msg("Provisioning batch finished")

	return generatedName, result, nil
}

// applyRows performs the per-row upserts and credential emails, accumulating
// independent tallies. A failed row never aborts the batch and DB writes for
// earlier rows are never rolled back.
func (s *ProvisionService) applyRows(ctx context.Context, rows []spreadsheet.ProvisionRow) *dto.ProvisionResult {
	result := &dto.ProvisionResult{}

	for i, row := range rows {
		result.TotalProcessed++
		rowNum := i + 2 // 1-based plus the header row

		if err := validateProvisionRow(row); err != nil {
			result.AddRowError(dto.RowError{Row: rowNum, UserID: row.UserID, Email: row.Email, Message: err.Error()})
			continue
		}

		hash, err := auth.HashPassword(row.Password)
		if err != nil {
			result.AddRowError(dto.RowError{Row: rowNum, UserID: row.UserID, Email: row.Email, Message: "failed to hash password"})
			continue
		}

		user := &models.User{
			UserID:       row.UserID,
			Email:        row.Email,
			PasswordHash: hash,
			Role:         models.Role(row.Role),
			Name:         row.Name,
			Phone:        optional(row.Phone),
			Department:   optional(row.Department),
		}
		if row.GraduationYear != 0 {
			year := row.GraduationYear
			user.GraduationYear = &year
		}

		inserted, err := s.userRepo.Upsert(ctx, user)
		if err != nil {
			result.AddRowError(dto.RowError{Row: rowNum, UserID: row.UserID, Email: row.Email, Message: err.Error()})
			continue
		}
		if inserted {
			result.InsertedInDB++
		} else {
			result.UpdatedInDB++
		}

		if err := s.emailSvc.SendCredentialEmail(row.Email, row.Name, row.UserID, row.Password); err != nil {
			result.AddEmailError(dto.RowError{Row: rowNum, UserID: row.UserID, Email: row.Email, Message: err.Error()})
		} else {
			result.EmailsSent++
		}

		// Pace outbound mail so the SMTP relay isn't hammered.
		if s.config.EmailSendDelay > 0 && i < len(rows)-1 {
			select {
			case <-time.After(s.config.EmailSendDelay):
			case <-ctx.Done():
				return result
			}
		}
	}

	return result
}
