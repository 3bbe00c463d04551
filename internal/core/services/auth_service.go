package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/platform/config"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/utils"
)

// authService handles registration and credential-based login. Tokens are
// HS256 JWTs carrying the user ID as subject.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepository
	userSvc  portssvc.UserSvcFacade
}

// NewAuthService creates the authentication service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepository, userSvc portssvc.UserSvcFacade) portssvc.AuthSvc {
	return &authService{cfg: cfg, userRepo: userRepo, userSvc: userSvc}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Register creates a new user account.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	user, err := s.userSvc.CreateUser(ctx, dto.CreateUserRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, req.Username)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a JWT. Invalid credentials and
// unknown usernames both surface as ErrUnauthorized so the response does not
// reveal which usernames exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
