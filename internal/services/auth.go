package services

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"submission-portal/internal/dto"
	"submission-portal/internal/repositories"
	apperrors "submission-portal/pkg/errors"
	"submission-portal/pkg/service"
	"submission-portal/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	reviewerRepo repositories.ReviewerRepositoryInterface
	jwtService   service.JWTService
	logger       *zap.Logger
}

func NewAuthService(
	reviewerRepo repositories.ReviewerRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{reviewerRepo: reviewerRepo, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	reviewer, err := s.reviewerRepo.FindByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.invalidCredentials(payload.Login)
		}
		return nil, err
	}

	if err := utils.ComparePasswords(reviewer.PasswordHash, payload.Password); err != nil {
		return nil, s.invalidCredentials(payload.Login)
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(int(reviewer.ID))
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) invalidCredentials(login string) error {
	s.logger.Warn("неудачная попытка входа", zap.String("login", login))
	return apperrors.NewHttpError(http.StatusUnauthorized,
		apperrors.ErrInvalidCredentials.Error(), apperrors.ErrInvalidCredentials, nil)
}
