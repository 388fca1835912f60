package usecase

import (
	"context"
	"errors"
	"fmt"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/repository"
	"blood-network-backend/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid hospital or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, lid, accessTokenID string) error
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	locationRepo repository.LocationRepository
	accountRepo  repository.HospitalAccountRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	accountRepo repository.HospitalAccountRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		locationRepo: locationRepo,
		accountRepo:  accountRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

// Login authenticates a hospital by (name, city) and password and issues an
// access/refresh token pair. The original system gated mutations behind a
// per-hospital password; tokens replace per-request password checks.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	location, err := u.locationRepo.FindByNameAndCity(db, req.Hospital, req.City)
	if err != nil {
		u.log.Warnf("Failed to find location: %+v", err)
		return nil, err
	}
	if location == nil {
		return nil, ErrInvalidCredentials
	}

	account, err := u.accountRepo.FindByLID(db, location.LID)
	if err != nil {
		u.log.Warnf("Failed to find hospital account: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, location.LID, location.Name, location.City)
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	tokenKey := refreshTokenKey(claims.LID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, tokenKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the used refresh token is revoked before a new pair is issued.
	if err := u.redisClient.Del(ctx, tokenKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.LID, claims.Hospital, claims.City)
}

func (u *authUsecase) Logout(ctx context.Context, lid, accessTokenID string) error {
	if err := u.redisClient.Del(ctx, accessTokenKey(lid, accessTokenID)).Err(); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, lid, hospital, city string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(lid, hospital, city)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(lid, hospital, city)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, accessTokenKey(lid, accessTokenID), "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshTokenKey(lid, refreshTokenID), "1", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func accessTokenKey(lid, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", lid, tokenID)
}

func refreshTokenKey(lid, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", lid, tokenID)
}
