package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/placenet/portal/internal/app/models"
	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/repositories"
	"github.com/placenet/portal/internal/pkg/apperrors"
	"github.com/placenet/portal/internal/pkg/auth"
	"github.com/placenet/portal/internal/pkg/email"
)

// AuthService handles authentication and account operations
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	emailSvc   email.EmailService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	emailSvc email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		emailSvc:   emailSvc,
		logger:     logger,
	}
}

// Login authenticates by email and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		// Same response for unknown email and wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, refreshToken, user.UserID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}

// Refresh exchanges a stored refresh token for a new token pair. The old
// refresh token is revoked (single use).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByUserID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	accessToken, newRefresh, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	if err := s.tokenRepo.Create(ctx, newRefresh, user.UserID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	// Opportunistic cleanup; a failure here is not the caller's problem.
	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to delete expired refresh tokens")
	}

	user.PasswordHash = ""
	return &dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}

// GetProfile returns a user's profile by institutional code.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the self-editable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.Department = req.Department
	user.CollegeName = req.CollegeName
	user.GraduationYear = req.GraduationYear
	user.CurrentCompany = req.CurrentCompany
	user.Designation = req.Designation
	user.Bio = req.Bio

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ChangePassword verifies the current password and stores the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// AdminResetPassword issues a random temporary password for a user and
// emails it to them.
func (s *AuthService) AdminResetPassword(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	tempPassword, err := auth.GenerateTempPassword(12)
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if err := s.emailSvc.SendPasswordResetEmail(user.Email, user.Name, tempPassword); err != nil {
		// The password is already reset; report the email failure without
		// undoing the reset.
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to send password reset email")
		return fmt.Errorf("password reset but email failed: %w", err)
	}

	s.logger.Info().Str("userID", userID).Msg("Admin password reset completed")
	return nil
}

// ListUsers returns the paginated user list for the admin dashboard.
func (s *AuthService) ListUsers(ctx context.Context, params dto.ListParams) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}
