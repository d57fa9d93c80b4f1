package usecase

import (
	"context"
	"errors"
	"fmt"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	userRepo   domain.UserRepository
	jwtManager *utils.JWTManager
	bcryptCost int
}

func NewAuthUsecase(userRepo domain.UserRepository, jwtManager *utils.JWTManager) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (u *AuthUsecase) Signup(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	if err := creds.Normalize(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        creds.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleOperator,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().Str("user_id", user.ID).Msg("Operator signed up")
	return u.issue(user)
}

func (u *AuthUsecase) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	if err := creds.Normalize(); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	user, err := u.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.WithContext(ctx).Warn().Str("user_id", user.ID).Msg("Login with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	return u.issue(user)
}

func (u *AuthUsecase) Me(ctx context.Context, session *domain.Session) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, session.UserID)
}

func (u *AuthUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	token, expiresAt, err := u.jwtManager.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
